package cpu

import "log"

// The stack lives in memory, growing down from STACK_TOP. The stack pointer
// wraps modulo 256 like any other register, so an overrun silently aliases
// program memory.

// Push decrements SP, then stores register index at SP. Pushing SP stores
// the decremented SP.
func (cpu *Cpu) Push(index uint8) (err error) {
	reg, err := cpu.register(index)
	if err != nil {
		return
	}

	cpu.Register[REG_SP]--
	cpu.RamWrite(cpu.Register[REG_SP], *reg)

	if cpu.Verbose {
		log.Printf("cpu: push %02x, depth %d", *reg, cpu.Depth())
	}

	return
}

// Pop loads the value at SP into register index, then increments SP. Popping
// into SP leaves the popped value plus one.
func (cpu *Cpu) Pop(index uint8) (err error) {
	reg, err := cpu.register(index)
	if err != nil {
		return
	}

	*reg = cpu.Peek()
	cpu.Register[REG_SP]++

	if cpu.Verbose {
		log.Printf("cpu: pop, depth %d", cpu.Depth())
	}

	return
}

// Peek returns the value at SP, without changing SP.
func (cpu *Cpu) Peek() uint8 {
	return cpu.RamRead(cpu.Register[REG_SP])
}

// Depth returns the number of bytes pushed below STACK_TOP.
func (cpu *Cpu) Depth() int {
	return int(uint8(STACK_TOP - cpu.Register[REG_SP]))
}
