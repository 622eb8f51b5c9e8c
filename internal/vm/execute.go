package vm

import "github.com/retroenv/retrogolib/log"

type handler func(v *VM, ins Instruction) error

// handlers maps every decoded instruction to its implementation.
var handlers = [opCount]handler{
	OpUnknown: (*VM).opUnknown,
	OpCLS:     (*VM).opCLS,
	OpRET:     (*VM).opRET,
	OpSYS:     (*VM).opSYS,
	OpJP:      (*VM).opJP,
	OpCALL:    (*VM).opCALL,
	OpSEVxNN:  (*VM).opSEVxNN,
	OpSNEVxNN: (*VM).opSNEVxNN,
	OpSEVxVy:  (*VM).opSEVxVy,
	OpLDVxNN:  (*VM).opLDVxNN,
	OpADDVxNN: (*VM).opADDVxNN,
	OpLDVxVy:  (*VM).opLDVxVy,
	OpOR:      (*VM).opOR,
	OpAND:     (*VM).opAND,
	OpXOR:     (*VM).opXOR,
	OpADDVxVy: (*VM).opADDVxVy,
	OpSUB:     (*VM).opSUB,
	OpSHR:     (*VM).opSHR,
	OpSUBN:    (*VM).opSUBN,
	OpSHL:     (*VM).opSHL,
	OpSNEVxVy: (*VM).opSNEVxVy,
	OpLDI:     (*VM).opLDI,
	OpJPV0:    (*VM).opJPV0,
	OpRND:     (*VM).opRND,
	OpDRW:     (*VM).opDRW,
	OpSKP:     (*VM).opSKP,
	OpSKNP:    (*VM).opSKNP,
	OpLDVxDT:  (*VM).opLDVxDT,
	OpLDVxK:   (*VM).opLDVxK,
	OpLDDTVx:  (*VM).opLDDTVx,
	OpLDSTVx:  (*VM).opLDSTVx,
	OpADDIVx:  (*VM).opADDIVx,
	OpLDFVx:   (*VM).opLDFVx,
	OpLDBVx:   (*VM).opLDBVx,
	OpLDIVx:   (*VM).opLDIVx,
	OpLDVxI:   (*VM).opLDVxI,
}

func (v *VM) execute(ins Instruction) error {
	return handlers[ins.Op](v, ins)
}

func (v *VM) opUnknown(ins Instruction) error {
	v.logger.Warn("Unknown instruction",
		log.Hex("opcode", ins.Word),
		log.Hex("pc", (v.regs.PC-2)&AddressMask))
	return nil
}

func (v *VM) opCLS(Instruction) error {
	v.display.Clear()
	return nil
}

func (v *VM) opRET(Instruction) error {
	address, err := v.stack.Pop()
	if err != nil {
		return err
	}
	v.regs.SetPC(address)
	return nil
}

// opSYS ignores calls to machine code routines of the host processor.
func (v *VM) opSYS(ins Instruction) error {
	v.logger.Debug("Ignoring machine code routine call", log.Hex("address", ins.NNN))
	return nil
}

func (v *VM) opJP(ins Instruction) error {
	v.regs.SetPC(ins.NNN)
	return nil
}

func (v *VM) opCALL(ins Instruction) error {
	if err := v.stack.Push(v.regs.PC); err != nil {
		return err
	}
	v.regs.SetPC(ins.NNN)
	return nil
}

func (v *VM) opSEVxNN(ins Instruction) error {
	if v.regs.V[ins.X] == ins.NN {
		v.regs.skip()
	}
	return nil
}

func (v *VM) opSNEVxNN(ins Instruction) error {
	if v.regs.V[ins.X] != ins.NN {
		v.regs.skip()
	}
	return nil
}

func (v *VM) opSEVxVy(ins Instruction) error {
	if v.regs.V[ins.X] == v.regs.V[ins.Y] {
		v.regs.skip()
	}
	return nil
}

func (v *VM) opSNEVxVy(ins Instruction) error {
	if v.regs.V[ins.X] != v.regs.V[ins.Y] {
		v.regs.skip()
	}
	return nil
}

func (v *VM) opLDVxNN(ins Instruction) error {
	v.regs.V[ins.X] = ins.NN
	return nil
}

func (v *VM) opADDVxNN(ins Instruction) error {
	v.regs.V[ins.X] = uint8((uint16(v.regs.V[ins.X]) + uint16(ins.NN)) % 256)
	return nil
}

func (v *VM) opLDVxVy(ins Instruction) error {
	v.regs.V[ins.X] = v.regs.V[ins.Y]
	return nil
}

func (v *VM) opOR(ins Instruction) error {
	v.regs.V[ins.X] |= v.regs.V[ins.Y]
	v.logicFlag()
	return nil
}

func (v *VM) opAND(ins Instruction) error {
	v.regs.V[ins.X] &= v.regs.V[ins.Y]
	v.logicFlag()
	return nil
}

func (v *VM) opXOR(ins Instruction) error {
	v.regs.V[ins.X] ^= v.regs.V[ins.Y]
	v.logicFlag()
	return nil
}

func (v *VM) logicFlag() {
	if v.quirks.LogicResetsVF {
		v.regs.V[FlagRegister] = 0
	}
}

// opADDVxVy adds VY to VX, the flag is written after the result so that VF
// holds the carry even if it is the destination.
func (v *VM) opADDVxVy(ins Instruction) error {
	sum := uint16(v.regs.V[ins.X]) + uint16(v.regs.V[ins.Y])
	v.regs.V[ins.X] = uint8(sum % 256)
	v.regs.setFlag(sum >= 256)
	return nil
}

func (v *VM) opSUB(ins Instruction) error {
	x, y := v.regs.V[ins.X], v.regs.V[ins.Y]
	v.regs.V[ins.X] = uint8((256 + uint16(x) - uint16(y)) % 256)
	v.regs.setFlag(x >= y)
	return nil
}

func (v *VM) opSUBN(ins Instruction) error {
	x, y := v.regs.V[ins.X], v.regs.V[ins.Y]
	v.regs.V[ins.X] = uint8((256 + uint16(y) - uint16(x)) % 256)
	v.regs.setFlag(y >= x)
	return nil
}

func (v *VM) opSHR(ins Instruction) error {
	source := v.shiftSource(ins)
	v.regs.V[ins.X] = source >> 1
	v.regs.setFlag(source&0x01 != 0)
	return nil
}

func (v *VM) opSHL(ins Instruction) error {
	source := v.shiftSource(ins)
	v.regs.V[ins.X] = uint8((uint16(source) << 1) % 256)
	v.regs.setFlag(source&0x80 != 0)
	return nil
}

func (v *VM) shiftSource(ins Instruction) uint8 {
	if v.quirks.ShiftUsesVY {
		return v.regs.V[ins.Y]
	}
	return v.regs.V[ins.X]
}

func (v *VM) opLDI(ins Instruction) error {
	v.regs.SetI(ins.NNN)
	return nil
}

func (v *VM) opJPV0(ins Instruction) error {
	v.regs.SetPC(ins.NNN + uint16(v.regs.V[0]))
	return nil
}

func (v *VM) opRND(ins Instruction) error {
	v.regs.V[ins.X] = uint8(v.rng.UintN(256)) & ins.NN
	return nil
}

// opDRW draws an 8 pixel wide sprite of N rows read from I. Only the start
// position wraps around the screen edges.
func (v *VM) opDRW(ins Instruction) error {
	x := v.regs.V[ins.X] % ScreenWidth
	y := v.regs.V[ins.Y] % ScreenHeight

	rows := v.sprite[:ins.N]
	for i := range rows {
		rows[i] = v.mem.Read(v.regs.I + uint16(i))
	}

	collided := v.display.PlotSprite(x, y, rows)
	v.regs.setFlag(collided)
	return nil
}

func (v *VM) opSKP(ins Instruction) error {
	if v.keys.IsKeyPressed(v.regs.V[ins.X] & 0xF) {
		v.regs.skip()
	}
	return nil
}

func (v *VM) opSKNP(ins Instruction) error {
	if !v.keys.IsKeyPressed(v.regs.V[ins.X] & 0xF) {
		v.regs.skip()
	}
	return nil
}

func (v *VM) opLDVxDT(ins Instruction) error {
	v.regs.V[ins.X] = v.timers.Delay
	return nil
}

// opLDVxK stores a pressed key in VX or suspends execution until a key is pressed.
func (v *VM) opLDVxK(ins Instruction) error {
	v.waitReg = ins.X
	v.state = WaitingForKey
	v.pollKey()
	return nil
}

func (v *VM) opLDDTVx(ins Instruction) error {
	v.timers.Delay = v.regs.V[ins.X]
	return nil
}

func (v *VM) opLDSTVx(ins Instruction) error {
	v.timers.Sound = v.regs.V[ins.X]
	return nil
}

func (v *VM) opADDIVx(ins Instruction) error {
	v.regs.SetI(v.regs.I + uint16(v.regs.V[ins.X]))
	return nil
}

func (v *VM) opLDFVx(ins Instruction) error {
	digit := uint16(v.regs.V[ins.X] & 0xF)
	v.regs.SetI(FontBase + digit*FontGlyphSize)
	return nil
}

func (v *VM) opLDBVx(ins Instruction) error {
	value := v.regs.V[ins.X]
	v.store(v.regs.I, value/100)
	v.store(v.regs.I+1, value/10%10)
	v.store(v.regs.I+2, value%10)
	return nil
}

func (v *VM) opLDIVx(ins Instruction) error {
	for i := range uint16(ins.X) + 1 {
		v.store(v.regs.I+i, v.regs.V[i])
	}
	v.incrementIndex(ins)
	return nil
}

func (v *VM) opLDVxI(ins Instruction) error {
	for i := range uint16(ins.X) + 1 {
		v.regs.V[i] = v.mem.Read(v.regs.I + i)
	}
	v.incrementIndex(ins)
	return nil
}

func (v *VM) incrementIndex(ins Instruction) {
	if v.quirks.IndexIncrement {
		v.regs.SetI(v.regs.I + uint16(ins.X) + 1)
	}
}

// store writes a byte to memory, writes to the font region are dropped.
func (v *VM) store(address uint16, value byte) {
	if !v.mem.Write(address, value) {
		v.logger.Debug("Dropped write to font memory",
			log.Hex("address", address&AddressMask),
			log.Hex("pc", (v.regs.PC-2)&AddressMask))
	}
}
