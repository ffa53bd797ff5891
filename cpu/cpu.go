package cpu

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"os"
)

const (
	REGISTER_COUNT = 8    // Number of registers.
	REG_SP         = 7    // Stack pointer register.
	MEMORY_SIZE    = 256  // Bytes of memory.
	STACK_TOP      = 0xf4 // Initial stack pointer.
)

var _cpu_defines = map[string]string{
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
	"SP":             fmt.Sprintf("%v", REG_SP),
	"MEMORY_SIZE":    fmt.Sprintf("%v", MEMORY_SIZE),
	"STACK_TOP":      fmt.Sprintf("0x%x", STACK_TOP),
}

// Cpu is the simulation context for the LS-8.
type Cpu struct {
	Verbose bool      // Set to enable verbose logging.
	Output  io.Writer // Destination of PRN output.

	Pc       int                   // Address of the next instruction byte.
	Register [REGISTER_COUNT]uint8 // Register bank; R7 is the stack pointer.
	Ram      [MEMORY_SIZE]uint8    // Flat memory.
	Halted   bool                  // Set once HLT is executed.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new, reset, CPU writing PRN output to stdout.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Output: os.Stdout,
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the registers and memory.
// - Sets SP to STACK_TOP, and PC to 0.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	clear(cpu.Ram[:])
	cpu.Register[REG_SP] = STACK_TOP
	cpu.Pc = 0
	cpu.Halted = false
	cpu.Ticks = 0
}

// Load copies a program image into memory, starting at address 0.
func (cpu *Cpu) Load(image []byte) (err error) {
	if len(image) > len(cpu.Ram) {
		err = ErrProgramSize
		return
	}

	copy(cpu.Ram[:], image)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(image))
	}

	return
}

// RamRead returns the byte at a memory address.
func (cpu *Cpu) RamRead(addr uint8) uint8 {
	return cpu.Ram[addr]
}

// RamWrite stores a byte at a memory address.
func (cpu *Cpu) RamWrite(addr uint8, value uint8) {
	cpu.Ram[addr] = value
}

// String returns the current CPU state as a trace line.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("%02X |", cpu.Pc)
	for n := range 3 {
		addr := cpu.Pc + n
		if addr < len(cpu.Ram) {
			text += fmt.Sprintf(" %02X", cpu.Ram[addr])
		} else {
			text += " --"
		}
	}
	text += " |"
	for _, reg := range cpu.Register {
		text += fmt.Sprintf(" %02X", reg)
	}

	return
}

// register returns the register cell for an operand.
func (cpu *Cpu) register(index uint8) (reg *uint8, err error) {
	if int(index) >= len(cpu.Register) {
		err = ErrRegisterInvalid(index)
		return
	}

	reg = &cpu.Register[index]
	return
}

// Fetch reads and decodes the instruction at the PC.
func (cpu *Cpu) Fetch() (inst Instruction, err error) {
	if cpu.Pc < 0 || cpu.Pc >= len(cpu.Ram) {
		err = ErrAddress(cpu.Pc)
		return
	}

	inst.Opcode, err = Decode(cpu.Ram[cpu.Pc])
	if err != nil {
		return
	}

	for n := range inst.Opcode.Operands() {
		addr := cpu.Pc + 1 + n
		if addr >= len(cpu.Ram) {
			err = ErrAddress(addr)
			return
		}
		inst.Operand[n] = cpu.Ram[addr]
	}

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: %v", cpu)
	}

	inst, err := cpu.Fetch()
	if err != nil {
		return
	}

	err = cpu.Execute(inst)
	if err != nil {
		return
	}

	return
}

// Run ticks the CPU until it halts, or an instruction faults.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction{Pc: cpu.Pc, Opcode: inst.Opcode}, err)
		}
	}()

	if cpu.Verbose {
		log.Printf("cpu: %02x: %v", cpu.Pc, inst)
	}

	a, b := inst.Operand[0], inst.Operand[1]

	switch inst.Opcode {
	case OP_HLT:
		// PC stays on the HLT.
		cpu.Halted = true
		cpu.Ticks += 1
		return
	case OP_LDI:
		var reg *uint8
		reg, err = cpu.register(a)
		if err != nil {
			return
		}
		*reg = b
	case OP_PRN:
		var reg *uint8
		reg, err = cpu.register(a)
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(cpu.Output, "%d\n", *reg)
		if err != nil {
			err = errors.Join(ErrOutput, err)
			return
		}
	case OP_PUSH:
		err = cpu.Push(a)
		if err != nil {
			return
		}
	case OP_POP:
		err = cpu.Pop(a)
		if err != nil {
			return
		}
	default:
		if !inst.Opcode.IsAlu() {
			err = ErrOpcode(inst.Opcode)
			return
		}
		err = cpu.Alu(inst.Opcode.AluOp(), a, b)
		if err != nil {
			return
		}
	}

	if !inst.Opcode.SetsPc() {
		cpu.Pc += inst.Size()
	}

	cpu.Ticks += 1

	return
}
