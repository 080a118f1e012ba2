package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mercator-hq/minerva/pkg/cli"
	"mercator-hq/minerva/pkg/ingest"
	"mercator-hq/minerva/pkg/ontology"
	"mercator-hq/minerva/pkg/ontology/validator"
)

var domainCmd = &cobra.Command{
	Use:   "domain",
	Short: "Inspect and validate domain schemas",
	Long:  `Load domain schema files and describe or validate their entity types, properties, and relationships.`,
}

var domainDescribeFlags struct {
	file string
	dir  string
	name string
}

var domainDescribeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Render a domain schema as markdown",
	Long: `Render loaded domain schemas as human-readable markdown.

Examples:
  # Describe every domain in a file
  minerva domain describe --file examples/itsm/domain.yaml

  # Describe one domain from a directory of schemas
  minerva domain describe --dir schemas/ --name itsm`,
	RunE: describeDomains,
}

var domainValidateFlags struct {
	file   string
	dir    string
	strict bool
	format string
}

var domainValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate domain schema files",
	Long: `Validate domain schema files for structural problems.

The validate command checks each schema for:
  - Missing required fields (domain, entity type, property, relationship names)
  - Duplicate entity type names
  - Relationship targets unknown to the domain
  - Enum properties without enum values

Examples:
  # Validate a single file
  minerva domain validate --file domain.yaml

  # Validate a directory, treating warnings as errors
  minerva domain validate --dir schemas/ --strict

  # JSON output for CI/CD
  minerva domain validate --dir schemas/ --format json`,
	RunE: validateDomains,
}

func init() {
	rootCmd.AddCommand(domainCmd)
	domainCmd.AddCommand(domainDescribeCmd)
	domainCmd.AddCommand(domainValidateCmd)

	domainDescribeCmd.Flags().StringVarP(&domainDescribeFlags.file, "file", "f", "", "domain schema file")
	domainDescribeCmd.Flags().StringVarP(&domainDescribeFlags.dir, "dir", "d", "", "directory of domain schema files")
	domainDescribeCmd.Flags().StringVar(&domainDescribeFlags.name, "name", "", "describe only this domain")

	domainValidateCmd.Flags().StringVarP(&domainValidateFlags.file, "file", "f", "", "domain schema file")
	domainValidateCmd.Flags().StringVarP(&domainValidateFlags.dir, "dir", "d", "", "directory of domain schema files")
	domainValidateCmd.Flags().BoolVar(&domainValidateFlags.strict, "strict", false, "treat warnings as errors")
	domainValidateCmd.Flags().StringVar(&domainValidateFlags.format, "format", "text", "output format: text, json")
}

// collectYAMLFiles resolves the --file/--dir flag pair into a file list.
func collectYAMLFiles(file, dir string) ([]string, error) {
	if file == "" && dir == "" {
		return nil, fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string

	if file != "" {
		files = append(files, file)
	}

	if dir != "" {
		matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
		if err != nil {
			return nil, fmt.Errorf("failed to list schema files: %w", err)
		}
		ymlMatches, err := filepath.Glob(filepath.Join(dir, "*.yml"))
		if err != nil {
			return nil, fmt.Errorf("failed to list schema files: %w", err)
		}
		files = append(files, matches...)
		files = append(files, ymlMatches...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no schema files found")
	}

	return files, nil
}

func describeDomains(cmd *cobra.Command, args []string) error {
	files, err := collectYAMLFiles(domainDescribeFlags.file, domainDescribeFlags.dir)
	if err != nil {
		return err
	}

	loader := ingest.NewLoader(nil, commandLogger())
	domains, err := loader.LoadDomains(files)
	if err != nil {
		return cli.NewCommandError("domain describe", err)
	}

	engine := ontology.NewEngine(commandLogger())
	for _, d := range domains {
		engine.RegisterDomain(d)
	}

	if domainDescribeFlags.name != "" {
		fmt.Println(engine.DescribeDomain(domainDescribeFlags.name))
		return nil
	}

	for i, d := range engine.GetDomains() {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(engine.DescribeDomain(d.Name))
	}
	return nil
}

// SchemaResult is the validation outcome for one schema file.
type SchemaResult struct {
	File     string   `json:"file"`
	Domain   string   `json:"domain,omitempty"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func validateDomains(cmd *cobra.Command, args []string) error {
	files, err := collectYAMLFiles(domainValidateFlags.file, domainValidateFlags.dir)
	if err != nil {
		return err
	}

	loader := ingest.NewLoader(nil, commandLogger())

	results := make([]SchemaResult, 0, len(files))
	for _, file := range files {
		results = append(results, validateSchemaFile(loader, file))
	}

	if domainValidateFlags.format == "json" {
		formatter := cli.NewFormatter(cli.FormatJSON)
		if err := formatter.FormatTo(os.Stdout, results); err != nil {
			return err
		}
		return schemaExitError(results, domainValidateFlags.strict)
	}

	for _, r := range results {
		printSchemaResult(r)
	}
	return schemaExitError(results, domainValidateFlags.strict)
}

func validateSchemaFile(loader *ingest.Loader, path string) SchemaResult {
	result := SchemaResult{File: path, Valid: true}

	domain, err := loader.LoadDomainFile(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Domain = domain.Name

	vr := validator.Validate(domain)
	result.Errors = vr.Errors()
	result.Warnings = vr.Warnings()
	if vr.HasErrors() {
		result.Valid = false
	}

	return result
}

func printSchemaResult(r SchemaResult) {
	status := "OK"
	if !r.Valid {
		status = "FAIL"
	}
	fmt.Printf("%s: %s\n", r.File, status)
	for _, e := range r.Errors {
		fmt.Printf("  error: %s\n", e)
	}
	for _, w := range r.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
}

func schemaExitError(results []SchemaResult, strict bool) error {
	failed := 0
	warned := 0
	for _, r := range results {
		if !r.Valid {
			failed++
		}
		warned += len(r.Warnings)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d schema file(s) failed validation", failed, len(results))
	}
	if strict && warned > 0 {
		return fmt.Errorf("%d warning(s) found in strict mode", warned)
	}
	return nil
}
