package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mercator-hq/minerva/pkg/audit/export"
	"mercator-hq/minerva/pkg/cli"
	"mercator-hq/minerva/pkg/config"
	"mercator-hq/minerva/pkg/constraint"
	"mercator-hq/minerva/pkg/constraint/engine"
	"mercator-hq/minerva/pkg/ingest"
	"mercator-hq/minerva/pkg/ontology"
)

var evaluateFlags struct {
	contextFile  string
	constraints  []string
	domains      []string
	entities     []string
	format       string
	exportPath   string
	exportFormat string
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Dry-run an action against a rule pack",
	Long: `Evaluate a prospective action against loaded constraints and print
the verdict.

The context file describes the action under consideration:

	intended_action: deploy
	target_entity: itsm:Service:SVC001
	metadata:
	  change_freeze_active: true

When domain schemas and entities are loaded too, related entities are
discovered from the graph before evaluation. The command exits non-zero
when the action is blocked.

Examples:
  # Evaluate a context against a rule pack
  minerva evaluate --context request.yaml --constraints constraints.yaml

  # Include the entity graph for related-entity discovery
  minerva evaluate --context request.yaml --constraints rulepacks/ \
    --domains schemas/ --entities entities/

  # JSON verdict plus a CSV audit export
  minerva evaluate --context request.yaml --constraints constraints.yaml \
    --format json --export audit.csv --export-format csv`,
	RunE: evaluateAction,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVar(&evaluateFlags.contextFile, "context", "", "evaluation context file (required)")
	evaluateCmd.Flags().StringSliceVar(&evaluateFlags.constraints, "constraints", nil, "constraint files or directories (falls back to config)")
	evaluateCmd.Flags().StringSliceVar(&evaluateFlags.domains, "domains", nil, "domain schema files or directories")
	evaluateCmd.Flags().StringSliceVar(&evaluateFlags.entities, "entities", nil, "entity files or directories")
	evaluateCmd.Flags().StringVar(&evaluateFlags.format, "format", "text", "output format: text, json")
	evaluateCmd.Flags().StringVar(&evaluateFlags.exportPath, "export", "", "write the audit trail to this file")
	evaluateCmd.Flags().StringVar(&evaluateFlags.exportFormat, "export-format", "json", "audit export format: json, csv")

	evaluateCmd.MarkFlagRequired("context")
}

// resolvePaths fills unset path flags from the config file when one was
// given with --config.
func resolvePaths() error {
	if cfgFile == "" {
		return nil
	}

	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("config", err.Error())
	}

	if len(evaluateFlags.constraints) == 0 {
		evaluateFlags.constraints = cfg.Constraints.Paths
	}
	if len(evaluateFlags.domains) == 0 {
		evaluateFlags.domains = cfg.Ontology.DomainPaths
	}
	if len(evaluateFlags.entities) == 0 {
		evaluateFlags.entities = cfg.Ontology.EntityPaths
	}
	return nil
}

// evaluationRequest is the YAML shape of a context file.
type evaluationRequest struct {
	IntendedAction  string         `yaml:"intended_action"`
	TargetEntity    string         `yaml:"target_entity"`
	RelatedEntities []string       `yaml:"related_entities"`
	Metadata        map[string]any `yaml:"metadata"`
}

func evaluateAction(cmd *cobra.Command, args []string) error {
	request, err := loadEvaluationRequest(evaluateFlags.contextFile)
	if err != nil {
		return err
	}

	if err := resolvePaths(); err != nil {
		return err
	}
	if len(evaluateFlags.constraints) == 0 {
		return fmt.Errorf("no constraint paths: set --constraints or a config file with constraints.paths")
	}

	logger := commandLogger()
	loader := ingest.NewLoader(nil, logger)

	defs, err := loader.LoadConstraints(evaluateFlags.constraints)
	if err != nil {
		return cli.NewCommandError("evaluate", err)
	}
	if len(defs) == 0 {
		return fmt.Errorf("no constraints found in %v", evaluateFlags.constraints)
	}

	eng := engine.New(engine.Config{Logger: logger})
	for _, def := range defs {
		if err := eng.Register(def); err != nil {
			return cli.NewCommandError("evaluate", err)
		}
	}

	evalCtx := &constraint.Context{
		IntendedAction:  request.IntendedAction,
		TargetEntity:    request.TargetEntity,
		RelatedEntities: request.RelatedEntities,
		Timestamp:       time.Now(),
		Metadata:        request.Metadata,
	}

	// When a graph is loaded and the context names no related entities,
	// discover the target's direct neighbours.
	if len(evaluateFlags.domains) > 0 || len(evaluateFlags.entities) > 0 {
		graph, err := buildGraph(loader, logger)
		if err != nil {
			return err
		}
		if len(evalCtx.RelatedEntities) == 0 {
			evalCtx.RelatedEntities = relatedEntities(graph, evalCtx.TargetEntity)
		}
	}

	ctx := cli.SetupSignalHandler()
	verdict, err := eng.Evaluate(ctx, evalCtx)
	if err != nil {
		return cli.NewCommandError("evaluate", err)
	}

	if evaluateFlags.format == "json" {
		formatter := cli.NewFormatter(cli.FormatJSON)
		if err := formatter.FormatTo(os.Stdout, verdict); err != nil {
			return err
		}
	} else {
		printVerdict(verdict)
	}

	if evaluateFlags.exportPath != "" {
		if err := exportAudit(eng, evaluateFlags.exportPath, evaluateFlags.exportFormat); err != nil {
			return err
		}
	}

	if !verdict.Allowed {
		return fmt.Errorf("action %q blocked", request.IntendedAction)
	}
	return nil
}

func loadEvaluationRequest(path string) (*evaluationRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read context file: %w", err)
	}

	var request evaluationRequest
	if err := yaml.Unmarshal(data, &request); err != nil {
		return nil, fmt.Errorf("failed to parse context file: %w", err)
	}

	if request.IntendedAction == "" {
		return nil, fmt.Errorf("context file must set intended_action")
	}
	if request.TargetEntity == "" {
		return nil, fmt.Errorf("context file must set target_entity")
	}

	return &request, nil
}

func buildGraph(loader *ingest.Loader, logger *slog.Logger) (*ontology.Engine, error) {
	graph := ontology.NewEngine(logger)

	if len(evaluateFlags.domains) > 0 {
		domains, err := loader.LoadDomains(evaluateFlags.domains)
		if err != nil {
			return nil, cli.NewCommandError("evaluate", err)
		}
		for _, d := range domains {
			graph.RegisterDomain(d)
		}
	}

	if len(evaluateFlags.entities) > 0 {
		entities, err := loader.LoadEntities(evaluateFlags.entities)
		if err != nil {
			return nil, cli.NewCommandError("evaluate", err)
		}
		for _, e := range entities {
			graph.AddEntity(e)
		}
	}

	return graph, nil
}

func relatedEntities(graph *ontology.Engine, targetID string) []string {
	if graph == nil {
		return nil
	}

	var related []string
	for id := range graph.Traverse(targetID, 1) {
		if id != targetID {
			related = append(related, id)
		}
	}
	return related
}

func printVerdict(v *constraint.Verdict) {
	decision := "ALLOWED"
	if !v.Allowed {
		decision = "BLOCKED"
	}

	fmt.Printf("Verdict: %s\n", decision)
	fmt.Printf("Action:  %s\n", v.Context.IntendedAction)
	fmt.Printf("Target:  %s\n", v.Context.TargetEntity)
	fmt.Printf("Summary: %s\n", v.Summary)

	if len(v.Results) > 0 {
		fmt.Println("Results:")
		for _, r := range v.Results {
			mark := "pass"
			if !r.Satisfied {
				mark = string(r.Severity)
			}
			fmt.Printf("  [%s] %s: %s\n", mark, r.ConstraintID, r.Explanation)
		}
	}
}

func exportAudit(eng *engine.Engine, path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	entries := eng.GetAuditLog()

	switch format {
	case "csv":
		exporter := export.NewCSVExporter(true)
		return exporter.Export(cli.SetupSignalHandler(), entries, f)
	case "json":
		exporter := export.NewJSONExporter(true)
		return exporter.Export(cli.SetupSignalHandler(), entries, f)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
}
