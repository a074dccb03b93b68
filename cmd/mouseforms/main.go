package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	mouseforms "github.com/AjBreidenbach/mouse-forms"
	"github.com/AjBreidenbach/mouse-forms/pkg/encode"
	"github.com/AjBreidenbach/mouse-forms/pkg/form"
	"github.com/AjBreidenbach/mouse-forms/pkg/markup"
	"github.com/AjBreidenbach/mouse-forms/pkg/preview"
	"github.com/AjBreidenbach/mouse-forms/pkg/render"
)

func main() {
	source := flag.String("source", "", "form template path")
	object := flag.String("object", "", "JSON object passed to the template renderer")
	format := flag.String("format", "json", "output format: json or yaml")
	output := flag.String("output", "", "output file (stdout if empty)")
	lang := flag.String("lang", "", "emit only the variant for this language tag")
	runPreview := flag.Bool("preview", false, "interactively fill the first variant instead of encoding")
	flag.Parse()

	if *source == "" {
		log.Fatalf("-source is required")
	}

	ctx := context.Background()

	var data map[string]any
	if *object != "" {
		if err := json.Unmarshal([]byte(*object), &data); err != nil {
			log.Fatalf("invalid -object payload: %v", err)
		}
	}

	forms, err := mouseforms.CompileWithObject(ctx,
		markup.SourceFromFile(filepath.Base(*source)), data,
		mouseforms.WithRenderOptions(render.WithBaseDir(filepath.Dir(*source))),
	)
	if err != nil {
		log.Fatalf("Failed to compile form: %v", err)
	}

	if *lang != "" {
		forms = selectVariant(forms, *lang)
		if forms == nil {
			log.Fatalf("no variant for language %q", *lang)
		}
	}

	if *runPreview {
		values, err := preview.New().Run(ctx, forms[0])
		if err != nil {
			log.Fatalf("Preview failed: %v", err)
		}
		payload, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode responses: %v", err)
		}
		fmt.Println(string(payload))
		return
	}

	var payload []byte
	switch *format {
	case "json":
		payload, err = encode.JSON(forms)
	case "yaml":
		payload, err = encode.YAML(forms)
	default:
		log.Fatalf("unknown format %q", *format)
	}
	if err != nil {
		log.Fatalf("Failed to encode forms: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Forms written to %s\n", *output)
	} else {
		fmt.Println(string(payload))
	}
}

func selectVariant(forms []form.Form, lang string) []form.Form {
	for _, f := range forms {
		if f.Language == lang {
			return []form.Form{f}
		}
	}
	return nil
}
