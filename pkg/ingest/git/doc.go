// Package git synchronises constraint rule packs from a Git repository.
//
// This package enables GitOps workflows for constraint management: a
// repository holding declarative constraint YAML is cloned locally,
// polled for new commits, and a reload callback fires whenever rule
// files change. HTTPS basic, token, and SSH key authentication are
// supported, and failed reloads roll the working tree back to the last
// known-good commit.
//
// # Basic Usage
//
//	cfg := &config.GitConfig{
//		URL:    "https://github.com/company/rulepacks.git",
//		Branch: "main",
//		Path:   "constraints/",
//	}
//
//	repo, err := git.NewRepository(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := repo.Clone(context.Background()); err != nil {
//		log.Fatal(err)
//	}
//
// # Change Detection
//
// The syncer polls the repository and triggers reloads when rule files
// change:
//
//	syncer := git.NewSyncer(repo, 30*time.Second, reloadFn)
//	syncer.Start(context.Background())
//
// # Provenance
//
// CurrentCommit exposes the HEAD commit so callers can stamp verdicts
// and audit entries with the rule-pack revision they were evaluated
// under.
package git
