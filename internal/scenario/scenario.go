// Package scenario implements the YAML scenario files consumed by the
// funmulti CLI.
//
// A scenario declares type aliases, the operations with their method
// signatures, and a list of calls to resolve:
//
//	aliases:
//	  Number: int | float
//	operations:
//	  - name: combine
//	    methods:
//	      - params: [int, Number]
//	        label: int-number
//	      - params: [Number, Number]
//	calls:
//	  - op: combine
//	    args: [int, int]
//
// A method parameter may be written "...expr" in the trailing position to
// declare a variadic tail. Labels are optional; unlabeled methods report
// their signature instead.
package scenario

import (
	"fmt"
	"os"
	"reflect"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/funmulti/internal/typeexpr"
	"github.com/funvibe/funmulti/pkg/dispatch"
	"github.com/funvibe/funmulti/pkg/types"
)

// File is the top-level scenario document.
type File struct {
	// Aliases maps scenario type names to type expressions.
	Aliases map[string]string `yaml:"aliases,omitempty"`

	// Operations lists the dispatchable operations and their methods.
	Operations []Operation `yaml:"operations"`

	// Calls lists argument-type tuples to resolve against the operations.
	Calls []Call `yaml:"calls"`
}

// Operation declares one dispatchable operation.
type Operation struct {
	Name    string   `yaml:"name"`
	Methods []Method `yaml:"methods"`
}

// Method declares one signature of an operation.
type Method struct {
	// Params are type expressions, one per parameter. A trailing
	// "...expr" entry declares a variadic tail.
	Params []string `yaml:"params"`

	// Precedence breaks specificity ties. Defaults to 0.
	Precedence int `yaml:"precedence,omitempty"`

	// Label identifies the method in reports. Defaults to the signature.
	Label string `yaml:"label,omitempty"`
}

// Call is one resolution request: concrete argument types for an operation.
type Call struct {
	Op   string   `yaml:"op"`
	Args []string `yaml:"args"`
}

// Load reads and validates a scenario file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals and validates a scenario document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	if len(f.Operations) == 0 {
		return fmt.Errorf("scenario declares no operations")
	}
	seen := make(map[string]bool)
	for i, op := range f.Operations {
		if op.Name == "" {
			return fmt.Errorf("operations[%d]: name is required", i)
		}
		if seen[op.Name] {
			return fmt.Errorf("operations[%d]: duplicate operation %q", i, op.Name)
		}
		seen[op.Name] = true
		if len(op.Methods) == 0 {
			return fmt.Errorf("operations[%d] (%s): at least one method is required", i, op.Name)
		}
		for j, m := range op.Methods {
			for k, p := range m.Params {
				if isVariadic(p) && k != len(m.Params)-1 {
					return fmt.Errorf("operations[%d] (%s) methods[%d]: variadic parameter %q must be trailing", i, op.Name, j, p)
				}
			}
		}
	}
	for i, c := range f.Calls {
		if c.Op == "" {
			return fmt.Errorf("calls[%d]: op is required", i)
		}
		if !seen[c.Op] {
			return fmt.Errorf("calls[%d]: unknown operation %q", i, c.Op)
		}
	}
	return nil
}

func isVariadic(param string) bool {
	return len(param) > 3 && param[:3] == "..."
}

// Scenario is a built, resolvable scenario.
type Scenario struct {
	file       *File
	dispatcher *dispatch.Dispatcher
	labels     map[uuid.UUID]string
}

// Build materializes the scenario: every declared method is registered in a
// fresh dispatcher with a stub implementation that reports its label.
func (f *File) Build() (*Scenario, error) {
	s := &Scenario{
		file:       f,
		dispatcher: dispatch.NewDispatcher(),
		labels:     make(map[uuid.UUID]string),
	}

	for _, op := range f.Operations {
		fn := s.dispatcher.Function(op.Name)
		for j, m := range op.Methods {
			sig, err := f.signatureOf(m)
			if err != nil {
				return nil, fmt.Errorf("operation %s methods[%d]: %w", op.Name, j, err)
			}
			label := m.Label
			if label == "" {
				label = op.Name + sig.String()
			}
			impl := func(args ...any) (any, error) { return label, nil }
			if err := fn.Register(sig, impl); err != nil {
				return nil, fmt.Errorf("operation %s methods[%d]: %w", op.Name, j, err)
			}
			// Map the registered method ID back to the label for
			// reporting. Re-registration keeps the ID, so a duplicate
			// shape overwrites its label here too.
			for _, rm := range fn.Methods() {
				if rm.Signature.Equal(sig) {
					s.labels[rm.ID] = label
					break
				}
			}
		}
	}
	return s, nil
}

func (f *File) signatureOf(m Method) (dispatch.Signature, error) {
	var params []types.Type
	var variadic types.Type
	for _, p := range m.Params {
		if isVariadic(p) {
			t, err := typeexpr.Parse(p[3:], f.Aliases)
			if err != nil {
				return dispatch.Signature{}, err
			}
			variadic = t
			continue
		}
		t, err := typeexpr.Parse(p, f.Aliases)
		if err != nil {
			return dispatch.Signature{}, err
		}
		params = append(params, t)
	}
	sig := dispatch.Sig(params...).WithPrecedence(m.Precedence)
	if variadic != nil {
		sig = sig.WithVariadic(variadic)
	}
	return sig, nil
}

// Result is the outcome of resolving one scenario call.
type Result struct {
	Call  Call
	Args  []reflect.Type
	Label string
	Sig   dispatch.Signature
	Err   error
}

// Run resolves every call without invoking any implementation.
func (s *Scenario) Run() []Result {
	results := make([]Result, 0, len(s.file.Calls))
	for _, c := range s.file.Calls {
		r := Result{Call: c}

		rts := make([]reflect.Type, len(c.Args))
		var argErr error
		for i, a := range c.Args {
			rt, err := typeexpr.Concrete(a, s.file.Aliases)
			if err != nil {
				argErr = fmt.Errorf("args[%d]: %w", i, err)
				break
			}
			rts[i] = rt
		}
		if argErr != nil {
			r.Err = argErr
			results = append(results, r)
			continue
		}
		r.Args = rts

		fn, ok := s.dispatcher.Lookup(c.Op)
		if !ok {
			r.Err = fmt.Errorf("unknown operation %q", c.Op)
			results = append(results, r)
			continue
		}
		m, err := fn.Resolve(rts...)
		if err != nil {
			r.Err = err
		} else {
			r.Sig = m.Signature
			r.Label = s.labels[m.ID]
		}
		results = append(results, r)
	}
	return results
}
