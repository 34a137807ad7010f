package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-skillswap/pkg/formschema"
	"github.com/goliatone/go-skillswap/pkg/signup"
)

var expectedInputs = map[signup.FieldName]string{
	signup.FieldEmail:    formschema.InputEmail,
	signup.FieldPassword: formschema.InputPassword,
	signup.FieldBio:      formschema.InputTextarea,
}

type violation struct {
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-overlay ui.yaml] [document.yaml]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nCheck that a signup form document binds every field the signup controller needs.\nWithout arguments the embedded document is checked.\n"); err != nil {
			panic(err)
		}
	}
	overlay := flag.String("overlay", "", "UI overlay (embedded when empty)")
	flag.Parse()

	ctx := context.Background()
	var (
		form *formschema.Form
		err  error
	)
	if path := flag.Arg(0); path != "" {
		form, err = formschema.LoadFiles(ctx, path, *overlay)
	} else {
		form, err = formschema.Load(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "lint: %v\n", err)
		os.Exit(1)
	}

	violations := lintForm(form)
	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s -> %s\n", v.location, v.message)
		}
		os.Exit(1)
	}
	fmt.Printf("%s %s: %d fields ok\n", form.Method, form.Path, len(form.Fields))
}

func lintForm(form *formschema.Form) []violation {
	var result []violation
	seen := make(map[signup.FieldName]bool)

	for _, field := range form.Fields {
		location := "fields." + field.Name
		name, ok := signup.ParseFieldName(field.Name)
		if !ok {
			result = append(result, violation{location, "not a signup field"})
			continue
		}
		seen[name] = true
		if field.Label == "" {
			result = append(result, violation{location, "missing label"})
		}
		if want, ok := expectedInputs[name]; ok && field.InputType != want {
			result = append(result, violation{location, fmt.Sprintf("input type %q, want %q", field.InputType, want)})
		}
	}
	for _, name := range signup.FieldNames() {
		if !seen[name] {
			result = append(result, violation{"fields." + string(name), "missing from form"})
		}
	}
	if form.SubmitLabel == "" {
		result = append(result, violation{"form", "missing submit label"})
	}
	return result
}
