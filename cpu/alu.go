package cpu

// AluOp is an ALU operation, the identifier nibble of an ALU opcode.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_ADD = AluOp(0) // ADD
	ALU_OP_MUL = AluOp(2) // MUL
)

// Alu performs the register-to-register operation, writing the result to
// register a.
func (cpu *Cpu) Alu(op AluOp, a, b uint8) (err error) {
	dst, err := cpu.register(a)
	if err != nil {
		return
	}
	src, err := cpu.register(b)
	if err != nil {
		return
	}

	output, err := doAlu(op, *dst, *src)
	if err != nil {
		return
	}

	*dst = output

	return
}

// doAlu performs the requested ALU action, and returns the output value.
func doAlu(op AluOp, input uint8, value uint8) (output uint8, err error) {
	var wide uint
	switch op {
	case ALU_OP_ADD:
		wide = uint(input) + uint(value)
	case ALU_OP_MUL:
		wide = uint(input) * uint(value)
	default:
		err = ErrAluUnsupported
		return
	}

	output = uint8(wide & 0xff)

	return
}
