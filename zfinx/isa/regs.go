package isa

// Regs is an integer register file. x0 reads as zero and ignores writes.
type Regs [NumRegs]uint32

// Read returns the value of register r.
func (x *Regs) Read(r Reg) uint32 {
	if r == RegZero {
		return 0
	}
	return x[r&(NumRegs-1)]
}

// Write sets register r to v.
func (x *Regs) Write(r Reg, v uint32) {
	if r == RegZero {
		return
	}
	x[r&(NumRegs-1)] = v
}
