package sihas_modbus

// SnapshotState is the shared register snapshot of one device: one mutator
// (whoever applies poll results) and many read-only measurement views.
type SnapshotState struct {
	regs      Registers
	available bool
}

// ApplyPoll commits a fresh snapshot. An empty snapshot means the device
// was unreachable: the previous registers are kept (stale value on
// failure) and only the availability flag drops.
func (s *SnapshotState) ApplyPoll(regs Registers) {
	if len(regs) == 0 {
		s.available = false
		return
	}
	s.regs = regs
	s.available = true
}

// MarkUnavailable drops the availability flag without touching the last
// good snapshot.
func (s *SnapshotState) MarkUnavailable() {
	s.available = false
}

func (s *SnapshotState) Registers() Registers {
	return s.regs
}

func (s *SnapshotState) Available() bool {
	return s.available
}

// Value projects one measurement out of the current snapshot.
func (s *SnapshotState) Value(m Measurement) (float64, error) {
	return m.Decode(s.regs)
}
