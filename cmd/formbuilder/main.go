// Command formbuilder manages a local form database: import definitions
// from YAML/JSON documents or OpenAPI operations, list and render saved
// forms, fill one out interactively, and serve the HTTP API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goliatone/go-formbuilder/internal/httpapi"
	"github.com/goliatone/go-formbuilder/internal/openapi"
	"github.com/goliatone/go-formbuilder/internal/store"
	"github.com/goliatone/go-formbuilder/pkg/loader"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/validate"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "import":
		err = runImport(ctx, os.Args[2:])
	case "list":
		err = runList(ctx, os.Args[2:])
	case "render":
		err = runRender(ctx, os.Args[2:])
	case "fill":
		err = runFill(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("formbuilder %s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: formbuilder <command> [flags]

commands:
  serve    start the HTTP API
  import   import a form definition (YAML/JSON document or OpenAPI operation)
  list     list saved forms
  render   render a saved form to HTML
  fill     fill out a saved form interactively and record the submission`)
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	dbPath := fs.String("db", "formbuilder.db", "SQLite database path")
	addr := fs.String("addr", ":8080", "listen address")
	fs.Parse(args)

	st, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	server := &http.Server{
		Addr:    *addr,
		Handler: httpapi.New(st),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", *addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return server.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

func runImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dbPath := fs.String("db", "formbuilder.db", "SQLite database path")
	source := fs.String("source", "", "definition document path (.yaml/.yml/.json)")
	spec := fs.String("openapi", "", "OpenAPI document path (alternative to -source)")
	operation := fs.String("operation", "", "operation id to import (with -openapi)")
	name := fs.String("name", "", "override the form name")
	fs.Parse(args)

	var formName string

	st, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	switch {
	case *source != "":
		def, err := loader.LoadFile(*source)
		if err != nil {
			return err
		}
		formName = def.Name
		if *name != "" {
			formName = *name
		}
		created, err := st.CreateForm(ctx, formName, def.Fields)
		if err != nil {
			return describeCreateErr(err)
		}
		fmt.Printf("Form %d (%s) created with %d fields\n", created.ID, created.Name, len(created.Fields))
		return nil

	case *spec != "":
		if *operation == "" {
			return fmt.Errorf("-operation is required with -openapi")
		}
		raw, err := os.ReadFile(*spec)
		if err != nil {
			return err
		}
		opName, flds, err := openapi.Import(ctx, raw, *operation)
		if err != nil {
			return err
		}
		formName = opName
		if *name != "" {
			formName = *name
		}
		created, err := st.CreateForm(ctx, formName, flds)
		if err != nil {
			return describeCreateErr(err)
		}
		fmt.Printf("Form %d (%s) created with %d fields\n", created.ID, created.Name, len(created.Fields))
		return nil
	}
	return fmt.Errorf("one of -source or -openapi is required")
}

func runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	dbPath := fs.String("db", "formbuilder.db", "SQLite database path")
	fs.Parse(args)

	st, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	forms, err := st.Forms(ctx)
	if err != nil {
		return err
	}
	if len(forms) == 0 {
		fmt.Println("No forms saved yet")
		return nil
	}
	for _, f := range forms {
		fmt.Printf("%d\t%s\t%d fields\t%s\n", f.ID, f.Name, len(f.Fields), f.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runRender(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	dbPath := fs.String("db", "formbuilder.db", "SQLite database path")
	formID := fs.Int64("form", 0, "form id to render")
	output := fs.String("output", "", "output file (stdout if empty)")
	fs.Parse(args)

	st, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	f, err := st.Form(ctx, *formID)
	if err != nil {
		return err
	}

	out, err := vanilla.New().Render(ctx, f, render.Options{})
	if err != nil {
		return err
	}
	if *output != "" {
		return os.WriteFile(*output, out, 0o644)
	}
	fmt.Println(string(out))
	return nil
}

func runFill(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fill", flag.ExitOnError)
	dbPath := fs.String("db", "formbuilder.db", "SQLite database path")
	formID := fs.Int64("form", 0, "form id to fill out")
	dryRun := fs.Bool("dry-run", false, "print the answers without recording a submission")
	fs.Parse(args)

	st, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	f, err := st.Form(ctx, *formID)
	if err != nil {
		return err
	}

	answers, err := tui.New().Fill(ctx, f, nil)
	if err != nil {
		return err
	}

	if errs := validate.Submission(f.Fields, answers); len(errs) > 0 {
		// The prompt loop validates each answer, so this only fires when a
		// required field has no answer path at all (e.g. a required dropdown
		// with no options).
		encoded, _ := json.MarshalIndent(errs, "", "  ")
		return fmt.Errorf("submission invalid:\n%s", encoded)
	}

	if *dryRun {
		encoded, _ := json.MarshalIndent(answers, "", "  ")
		fmt.Println(string(encoded))
		return nil
	}

	sub, err := st.CreateSubmission(ctx, f.ID, answers)
	if err != nil {
		return err
	}
	fmt.Printf("Submission %d recorded for form %d\n", sub.ID, f.ID)
	return nil
}

func describeCreateErr(err error) error {
	defErr, ok := store.AsDefinitionError(err)
	if !ok {
		return err
	}
	var b strings.Builder
	b.WriteString("definition invalid:")
	if defErr.Errors.Name != "" {
		b.WriteString("\n  name: " + defErr.Errors.Name)
	}
	for id, fieldErrs := range defErr.Errors.Fields {
		if fieldErrs.Label != "" {
			fmt.Fprintf(&b, "\n  field %s: %s", id, fieldErrs.Label)
		}
		if fieldErrs.Options != "" {
			fmt.Fprintf(&b, "\n  field %s: %s", id, fieldErrs.Options)
		}
	}
	return fmt.Errorf("%s", b.String())
}
