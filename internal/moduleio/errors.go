package moduleio

import "fmt"

// IOFault is a fatal failure to load or store a module. The run that hits it
// writes nothing.
type IOFault struct {
	Op   string // read, parse, validate, encode or write
	Path string
	Err  error
}

func (e *IOFault) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOFault) Unwrap() error {
	return e.Err
}

func fault(op, path string, err error) error {
	return &IOFault{Op: op, Path: path, Err: err}
}
