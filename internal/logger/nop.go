package logger

// Nop discards everything. Handy default for tests.
type Nop struct{}

func (n Nop) With(args ...interface{}) Logger { return n }

func (Nop) Debugf(template string, args ...interface{}) {}
func (Nop) Infof(template string, args ...interface{})  {}
func (Nop) Warnf(template string, args ...interface{})  {}
func (Nop) Errorf(template string, args ...interface{}) {}
func (Nop) Fatalf(template string, args ...interface{}) {}
func (Nop) Sync() error                                 { return nil }
