package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assemble(t *testing.T, program ...string) (prog *Program) {
	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(t, err)
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Statements))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("7", asm.Equate["SP"])
	assert.Equal("0xf4", asm.Equate["STACK_TOP"])
	assert.Equal("256", asm.Equate["MEMORY_SIZE"])
}

func TestAssemblerMultiply(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"; Multiply two numbers",
		"LDI R0,8",
		"ldi r1, 9   # lower case",
		"MUL R0,R1",
		"PRN R0",
		"HLT",
	)

	expected := []Statement{
		{2, 0, []string{"LDI", "R0", "8"}, []uint8{0b10000010, 0, 8}, nil},
		{3, 3, []string{"ldi", "r1", "9"}, []uint8{0b10000010, 1, 9}, nil},
		{4, 6, []string{"MUL", "R0", "R1"}, []uint8{0b10100010, 0, 1}, nil},
		{5, 9, []string{"PRN", "R0"}, []uint8{0b01000111, 0}, nil},
		{6, 11, []string{"HLT"}, []uint8{0b00000001}, nil},
	}

	assert.Equal(expected, prog.Statements)
	assert.Equal([]byte{0b10000010, 0, 8, 0b10000010, 1, 9, 0b10100010, 0, 1, 0b01000111, 0, 0b00000001}, prog.Binary())
}

func TestAssemblerValues(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		line  string
		value uint8
	}){
		{"LDI R2 0x1f", 0x1f},
		{"LDI R2 0b1010", 0b1010},
		{"LDI R2 0o17", 0o17},
		{"LDI R2 -1", 0xff},
		{"LDI R2 -128", 0x80},
		{"LDI R2 ~0", 0xff},
		{"LDI R2 'A'", 'A'},
		{"LDI R2 '\\n'", '\n'},
		{"LDI R2 $(6*7)", 42},
		{"LDI R2 $(STACK_TOP - 4)", 0xf0},
		{"LDI R2 $(LINENO + 1)", 2},
		{"LDI R2 STACK_TOP", 0xf4},
	}

	for _, entry := range table {
		prog := assemble(t, entry.line)
		assert.Equal([]byte{uint8(OP_LDI), 2, entry.value}, prog.Binary(), entry.line)
	}
}

func TestAssemblerRegisters(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"PUSH SP",
		"POP sp",
		"PRN R7",
		"PRN 3",
	)

	assert.Equal([]byte{
		uint8(OP_PUSH), REG_SP,
		uint8(OP_POP), REG_SP,
		uint8(OP_PRN), 7,
		uint8(OP_PRN), 3,
	}, prog.Binary())
}

func TestAssemblerEquate(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("ANSWER", "42")

	program := []string{
		".equ COUNT 3",
		".equ ACC R1",
		"LDI ACC COUNT",
		"LDI R0 ANSWER",
		"LDI R0 $(COUNT * ANSWER)",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	assert.Equal([]byte{
		uint8(OP_LDI), 1, 3,
		uint8(OP_LDI), 0, 42,
		uint8(OP_LDI), 0, 126,
	}, prog.Binary())
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".macro SQUARE reg value",
		"LDI reg value",
		"MUL reg reg",
		".endm",
		"SQUARE R0 5",
		"SQUARE R1 $(1+2)",
		"HLT",
	)

	assert.Equal([]byte{
		uint8(OP_LDI), 0, 5,
		uint8(OP_MUL), 0, 0,
		uint8(OP_LDI), 1, 3,
		uint8(OP_MUL), 1, 1,
		uint8(OP_HLT),
	}, prog.Binary())

	// Macro lines carry the line number of the macro body.
	assert.Equal(2, prog.Statements[0].LineNo)
	assert.Equal(3, prog.Statements[1].LineNo)
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"start: LDI R0 data",
		"LDI R1 start",
		"HLT",
		"data: .byte 0x2a 'x' end",
		"end:",
	)

	assert.Equal([]byte{
		uint8(OP_LDI), 0, 7,
		uint8(OP_LDI), 1, 0,
		uint8(OP_HLT),
		0x2a, 'x', 10,
	}, prog.Binary())

	assert.Equal([]Link{{Index: 2, Label: "data"}}, prog.Statements[0].Links)
}

func TestAssemblerMacroLabels(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".macro HERE reg",
		"@here: LDI reg @here",
		".endm",
		"HLT",
		"HERE R0",
		"HERE R1",
	)

	assert.Equal([]byte{
		uint8(OP_HLT),
		uint8(OP_LDI), 0, 1,
		uint8(OP_LDI), 1, 4,
	}, prog.Binary())
}

func TestAssemblerMacroLabels_Lines(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".macro LOADSELF reg",
		"@here: LDI reg @here",
		"LDI reg @here",
		"LDI reg @next",
		"@next: PRN reg",
		".endm",
		"HLT",
		"LOADSELF R0",
		"LOADSELF R1",
	)

	assert.Equal([]byte{
		uint8(OP_HLT),
		uint8(OP_LDI), 0, 1,
		uint8(OP_LDI), 0, 1,
		uint8(OP_LDI), 0, 10,
		uint8(OP_PRN), 0,
		uint8(OP_LDI), 1, 12,
		uint8(OP_LDI), 1, 12,
		uint8(OP_LDI), 1, 21,
		uint8(OP_PRN), 1,
	}, prog.Binary())
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		program []string
		lineno  int
		err     error
	}){
		{[]string{"NOP"}, 1, ErrInstructionInvalid},
		{[]string{"HLT", "LDI R0"}, 2, ErrOpcodeValueMissing},
		{[]string{"PRN R0 R1"}, 1, ErrOpcodeExtraArgs},
		{[]string{"PRN R8"}, 1, ErrParseRegister("R8")},
		{[]string{"MUL R0 9"}, 1, ErrParseRegister("9")},
		{[]string{"LDI R0 256"}, 1, ErrValueRange},
		{[]string{"LDI R0 -129"}, 1, ErrValueRange},
		{[]string{"LDI R0 nowhere"}, 1, ErrLabelMissing("nowhere")},
		{[]string{"LDI R0 end", ".byte" + strings.Repeat(" 0", MEMORY_SIZE-3), "end:"}, 1, ErrValueRange},
		{[]string{".byte" + strings.Repeat(" 0", MEMORY_SIZE), "end:", ".byte end"}, 3, ErrValueRange},
		{[]string{"LDI R0 1x"}, 1, ErrParseNumber("1x")},
		{[]string{".byte"}, 1, ErrOpcodeValueMissing},
		{[]string{".equ A"}, 1, ErrEquateSyntax},
		{[]string{".equ A 1", ".equ A 2"}, 2, ErrEquateDuplicate},
		{[]string{"a: HLT", "a: HLT"}, 2, ErrLabelDuplicate},
		{[]string{".macro M", ".macro N"}, 2, ErrMacroNesting},
		{[]string{".macro M", ".endm", ".macro M"}, 3, ErrMacroDuplicate},
		{[]string{".macro M"}, 1, ErrMacroLonely},
		{[]string{".endm"}, 1, ErrMacroLonelyEndm},
		{[]string{".macro M a", ".endm", "M"}, 3, ErrMacroSyntax},
		{[]string{".macro M", "BAD", ".endm", "M"}, 4, ErrInstructionInvalid},
		{[]string{".byte $(1 +)"}, 1, nil},
		{[]string{`.byte $("a")`}, 1, ErrParseExpression(`"a"`)},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(strings.Join(entry.program, "\n")))
		assert.Error(err, "%v", entry.program)

		var serr ErrSyntax
		if assert.True(errors.As(err, &serr), "%v", entry.program) {
			assert.Equal(entry.lineno, serr.LineNo, "%v", entry.program)
		}
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, "%v", entry.program)
		}
	}
}

func TestAssemblerProgramSize(t *testing.T) {
	assert := assert.New(t)

	program := strings.Repeat("LDI R0 1\n", MEMORY_SIZE/3+1)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader(program))
	assert.ErrorIs(err, ErrProgramSize)
}
