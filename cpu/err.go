package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted             = errors.New(f("cpu halted"))
	ErrOutOfBounds        = errors.New(f("out of bounds"))
	ErrProgramSize        = errors.New(f("program larger than memory"))
	ErrUnknownInstruction = errors.New(f("unknown instruction"))
	ErrAluUnsupported     = errors.New(f("unsupported alu operation"))
	ErrOutput             = errors.New(f("output failed"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrValueRange         = errors.New(f("value out of byte range"))
)

// ErrRegisterInvalid is an out of bounds register index.
type ErrRegisterInvalid uint8

func (er ErrRegisterInvalid) Error() string {
	return f("register %d invalid", uint8(er))
}

func (er ErrRegisterInvalid) Is(err error) bool {
	if err == ErrOutOfBounds {
		return true
	}
	_, ok := err.(ErrRegisterInvalid)
	return ok
}

// ErrAddress is an out of bounds memory address.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address 0x%x outside memory", int(ea))
}

func (ea ErrAddress) Unwrap() error {
	return ErrOutOfBounds
}

// ErrOpcode is an opcode byte with no decoding.
type ErrOpcode uint8

func (eo ErrOpcode) Error() string {
	return f("unknown instruction 0x%02x", uint8(eo))
}

func (eo ErrOpcode) Unwrap() error {
	return ErrUnknownInstruction
}

// ErrInstruction locates the instruction that faulted.
type ErrInstruction struct {
	Pc     int
	Opcode Opcode
}

func (ei ErrInstruction) Error() string {
	return f("%02x: %v", ei.Pc, ei.Opcode)
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
