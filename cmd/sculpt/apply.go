package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sculpt/internal/ast"
	"sculpt/internal/config"
	"sculpt/internal/journal"
	"sculpt/internal/project"
	"sculpt/internal/structures"
)

// Script is a JSON manipulation batch. Operations run in order against
// the files of one project; structure payloads use the field names of the
// structures package.
type Script struct {
	Operations []Operation `json:"operations"`
}

// Operation is one scripted manipulation. Op selects the action; File is
// the path relative to the project root; Target names a top-level
// declaration, Member a member inside it, and Value carries the scalar
// argument (initializer expression, new name, ...).
type Operation struct {
	Op     string `json:"op"`
	File   string `json:"file"`
	Target string `json:"target"`
	Member string `json:"member"`
	Value  string `json:"value"`

	Class      *structures.Class             `json:"class,omitempty"`
	Interface  *structures.Interface         `json:"interface,omitempty"`
	Enum       *structures.Enum              `json:"enum,omitempty"`
	Function   *structures.Function          `json:"function,omitempty"`
	TypeAlias  *structures.TypeAlias         `json:"type_alias,omitempty"`
	Variable   *structures.VariableStatement `json:"variable,omitempty"`
	Property   *structures.Property          `json:"property,omitempty"`
	Method     *structures.Method            `json:"method,omitempty"`
	EnumMember *structures.EnumMember        `json:"enum_member,omitempty"`
}

var applyDryRun bool

var applyCmd = &cobra.Command{
	Use:   "apply [script]",
	Short: "Run a JSON manipulation script against a project",
	Long: `Reads a manipulation script and applies its operations in order.
Touched files are written back to disk unless --dry-run is given, in
which case the resulting contents are printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "print results instead of writing files")
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}

	scriptFile, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer scriptFile.Close()
	var script Script
	if err := json.NewDecoder(scriptFile).Decode(&script); err != nil {
		return fmt.Errorf("failed to decode script: %w", err)
	}

	proj := project.New(cfg.Format())
	defer proj.Close()

	if cfg.JournalPath != "" && !applyDryRun {
		j, err := journal.Open(cfg.JournalPath)
		if err != nil {
			return err
		}
		defer j.Close()
		proj.AttachJournal(j)
	}

	for i, op := range script.Operations {
		if err := applyOperation(proj, cfg.Root, op); err != nil {
			return fmt.Errorf("operation %d (%s): %w", i, op.Op, err)
		}
	}

	if applyDryRun {
		for _, file := range proj.SourceFiles() {
			fmt.Printf("--- %s\n%s\n", file.Path(), file.Content())
		}
		return nil
	}
	if err := proj.SaveAll(); err != nil {
		return err
	}
	log.Printf("Applied %d operations", len(script.Operations))
	return nil
}

func applyOperation(proj *project.Project, root string, op Operation) error {
	path := filepath.Join(root, op.File)
	file := proj.GetSourceFile(path)
	if file == nil {
		var err error
		file, err = proj.AddSourceFileFromDisk(path)
		if err != nil {
			return err
		}
	}

	switch op.Op {
	case "add-class":
		if op.Class == nil {
			return fmt.Errorf("%w: add-class needs a class payload", ast.ErrInvalidOperation)
		}
		_, err := file.AddClass(*op.Class)
		return err
	case "add-interface":
		if op.Interface == nil {
			return fmt.Errorf("%w: add-interface needs an interface payload", ast.ErrInvalidOperation)
		}
		_, err := file.AddInterface(*op.Interface)
		return err
	case "add-enum":
		if op.Enum == nil {
			return fmt.Errorf("%w: add-enum needs an enum payload", ast.ErrInvalidOperation)
		}
		_, err := file.AddEnum(*op.Enum)
		return err
	case "add-function":
		if op.Function == nil {
			return fmt.Errorf("%w: add-function needs a function payload", ast.ErrInvalidOperation)
		}
		_, err := file.AddFunction(*op.Function)
		return err
	case "add-type-alias":
		if op.TypeAlias == nil {
			return fmt.Errorf("%w: add-type-alias needs a type_alias payload", ast.ErrInvalidOperation)
		}
		_, err := file.AddTypeAlias(*op.TypeAlias)
		return err
	case "add-variable":
		if op.Variable == nil {
			return fmt.Errorf("%w: add-variable needs a variable payload", ast.ErrInvalidOperation)
		}
		_, err := file.AddVariableStatement(*op.Variable)
		return err
	case "fill-class":
		if op.Class == nil {
			return fmt.Errorf("%w: fill-class needs a class payload", ast.ErrInvalidOperation)
		}
		class, err := file.GetClassOrThrow(op.Target)
		if err != nil {
			return err
		}
		_, err = ast.FillClass(class, *op.Class)
		return err
	case "fill-interface":
		if op.Interface == nil {
			return fmt.Errorf("%w: fill-interface needs an interface payload", ast.ErrInvalidOperation)
		}
		iface, err := file.GetInterfaceOrThrow(op.Target)
		if err != nil {
			return err
		}
		_, err = ast.FillInterface(iface, *op.Interface)
		return err
	case "fill-enum":
		if op.Enum == nil {
			return fmt.Errorf("%w: fill-enum needs an enum payload", ast.ErrInvalidOperation)
		}
		enum, err := file.GetEnumOrThrow(op.Target)
		if err != nil {
			return err
		}
		_, err = ast.FillEnum(enum, *op.Enum)
		return err
	case "add-property":
		if op.Property == nil {
			return fmt.Errorf("%w: add-property needs a property payload", ast.ErrInvalidOperation)
		}
		class, err := file.GetClassOrThrow(op.Target)
		if err != nil {
			return err
		}
		_, err = class.AddProperty(*op.Property)
		return err
	case "add-method":
		if op.Method == nil {
			return fmt.Errorf("%w: add-method needs a method payload", ast.ErrInvalidOperation)
		}
		class, err := file.GetClassOrThrow(op.Target)
		if err != nil {
			return err
		}
		_, err = class.AddMethod(*op.Method)
		return err
	case "add-enum-member":
		if op.EnumMember == nil {
			return fmt.Errorf("%w: add-enum-member needs an enum_member payload", ast.ErrInvalidOperation)
		}
		enum, err := file.GetEnumOrThrow(op.Target)
		if err != nil {
			return err
		}
		_, err = enum.AddEnumMember(*op.EnumMember)
		return err
	case "set-initializer":
		member, err := findMember(file, op.Target, op.Member)
		if err != nil {
			return err
		}
		_, err = member.SetInitializer(op.Value)
		return err
	case "remove-initializer":
		member, err := findMember(file, op.Target, op.Member)
		if err != nil {
			return err
		}
		_, err = member.RemoveInitializer()
		return err
	case "remove-member":
		member, err := findMember(file, op.Target, op.Member)
		if err != nil {
			return err
		}
		return member.Remove()
	case "remove":
		decl, err := findDeclaration(file, op.Target)
		if err != nil {
			return err
		}
		return decl.Remove()
	case "rename":
		decl, err := findDeclaration(file, op.Target)
		if err != nil {
			return err
		}
		return decl.Rename(op.Value)
	case "set-exported":
		decl, err := findDeclaration(file, op.Target)
		if err != nil {
			return err
		}
		_, err = decl.SetExported(op.Value != "false")
		return err
	default:
		return fmt.Errorf("%w: unknown op %q", ast.ErrInvalidOperation, op.Op)
	}
}

// findDeclaration resolves a top-level declaration by name, whatever its
// kind.
func findDeclaration(file *ast.SourceFile, name string) (*ast.Node, error) {
	lookups := []func(string) (*ast.Node, error){
		file.GetClass,
		file.GetInterface,
		file.GetEnum,
		file.GetFunction,
		file.GetTypeAlias,
		file.GetVariableDeclaration,
	}
	for _, lookup := range lookups {
		decl, err := lookup(name)
		if err != nil {
			return nil, err
		}
		if decl != nil {
			return decl, nil
		}
	}
	return nil, fmt.Errorf("%w: no declaration named %q", ast.ErrNotFound, name)
}

// findMember resolves a named member of a top-level declaration.
func findMember(file *ast.SourceFile, target, member string) (*ast.Node, error) {
	decl, err := findDeclaration(file, target)
	if err != nil {
		return nil, err
	}
	members, err := decl.Members()
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		name, err := m.Name()
		if err != nil {
			continue
		}
		if name == member {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s has no member named %q", ast.ErrNotFound, target, member)
}
