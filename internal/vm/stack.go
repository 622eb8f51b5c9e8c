package vm

// StackDepth is the maximum number of nested subroutine calls.
const StackDepth = 16

// Stack is the bounded subroutine return address stack.
type Stack struct {
	entries [StackDepth]uint16
	sp      int
}

// Push saves a return address. A full stack is left unchanged and ErrStackOverflow is returned.
func (s *Stack) Push(address uint16) error {
	if s.sp == StackDepth {
		return ErrStackOverflow
	}
	s.entries[s.sp] = address
	s.sp++
	return nil
}

// Pop removes and returns the last saved return address.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.entries[s.sp], nil
}

// Depth returns the stack pointer, the number of saved return addresses.
func (s *Stack) Depth() int {
	return s.sp
}

// Reset empties the stack.
func (s *Stack) Reset() {
	*s = Stack{}
}
