package cli

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/clebergnu/ncf/internal/converge"
)

// planSchema constrains plan files: a list of augeas-set actions.
const planSchema = `
#Action: {
	path:  string & !=""
	value: string
	lens:  string | *""
	file:  string | *""
}

actions: [...#Action]
`

// planAction mirrors #Action for decoding.
type planAction struct {
	Path  string `json:"path"`
	Value string `json:"value"`
	Lens  string `json:"lens"`
	File  string `json:"file"`
}

// LoadPlan reads a CUE plan from a file or directory, validates it against
// the embedded schema, and returns the requests in declaration order.
//
// Beyond the schema, pair discipline is enforced here: lens and file must
// be given together or not at all. Plan files are authored artifacts, so
// this is the one surface where the pairing contract is checked up front.
func LoadPlan(path string) ([]converge.Request, error) {
	// Schema and plan must share one context or unification is undefined.
	ctx := cuecontext.New()

	value, err := buildPlanValue(ctx, path)
	if err != nil {
		return nil, err
	}

	schema := ctx.CompileString(planSchema)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling plan schema: %w", err)
	}

	unified := schema.Unify(value)
	if err := unified.Err(); err != nil {
		return nil, fmt.Errorf("plan %s does not match schema: %w", path, err)
	}

	actionsVal := unified.LookupPath(cue.ParsePath("actions"))
	if !actionsVal.Exists() {
		return nil, fmt.Errorf("plan %s: no actions list found", path)
	}
	if err := actionsVal.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("plan %s is not concrete: %w", path, err)
	}

	iter, err := actionsVal.List()
	if err != nil {
		return nil, fmt.Errorf("plan %s: actions is not a list: %w", path, err)
	}

	var requests []converge.Request
	for idx := 0; iter.Next(); idx++ {
		var a planAction
		if err := iter.Value().Decode(&a); err != nil {
			return nil, fmt.Errorf("plan %s: action[%d]: %w", path, idx, err)
		}
		if (a.Lens == "") != (a.File == "") {
			return nil, fmt.Errorf("plan %s: action[%d]: lens and file must be set together", path, idx)
		}
		requests = append(requests, converge.Request{
			Path:  a.Path,
			Value: a.Value,
			Lens:  a.Lens,
			File:  a.File,
		})
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("plan %s: no actions defined", path)
	}
	return requests, nil
}

// buildPlanValue loads the CUE value from a single file or a directory of
// .cue files.
func buildPlanValue(ctx *cue.Context, path string) (cue.Value, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return cue.Value{}, fmt.Errorf("plan not found: %s", path)
	}
	if err != nil {
		return cue.Value{}, fmt.Errorf("error accessing plan %s: %w", path, err)
	}

	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return cue.Value{}, fmt.Errorf("reading plan %s: %w", path, err)
		}
		value := ctx.CompileBytes(data, cue.Filename(path))
		if err := value.Err(); err != nil {
			return cue.Value{}, fmt.Errorf("building plan %s: %w", path, err)
		}
		return value, nil
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: path})
	if len(instances) == 0 {
		return cue.Value{}, fmt.Errorf("plan %s: no CUE instances loaded", path)
	}
	inst := instances[0]
	if inst.Err != nil {
		return cue.Value{}, fmt.Errorf("loading plan %s: %w", path, inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("building plan %s: %w", path, err)
	}
	return value, nil
}
