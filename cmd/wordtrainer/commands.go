package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"wordtrainer/internal/config"
	"wordtrainer/internal/domain"
	"wordtrainer/internal/service"
	"wordtrainer/internal/session"
	"wordtrainer/internal/tui"
)

func newRootCmd(words *service.WordsService, practice *service.PracticeService, cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "wordtrainer",
		Short:         "Practice term/definition lists in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(lsCmd(words))
	root.AddCommand(mkdirCmd(words))
	root.AddCommand(newCmd(words))
	root.AddCommand(addCmd(words))
	root.AddCommand(forgetCmd(words))
	root.AddCommand(importCmd(words))
	root.AddCommand(exportCmd(words))
	root.AddCommand(showCmd(words))
	root.AddCommand(rmCmd(words))
	root.AddCommand(mvCmd(words))
	root.AddCommand(renameCmd(words))
	root.AddCommand(practiceCmd(practice, cfg))

	return root
}

// splitPath splits "a/b/c" into parent path "a/b" and name "c"
func splitPath(p string) (parent, name string) {
	p = strings.Trim(p, "/")
	dir, name := path.Split(p)
	return strings.Trim(dir, "/"), name
}

func lsCmd(words *service.WordsService) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [folder]",
		Short: "List folders and lists",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := ""
			if len(args) == 1 {
				p = args[0]
			}
			folders, lists, err := words.ListFolder(p)
			if err != nil {
				return err
			}
			if len(folders) == 0 && len(lists) == 0 {
				fmt.Println("Empty. Use 'wordtrainer import' or 'wordtrainer new' to create a list.")
				return nil
			}
			for _, f := range folders {
				fmt.Printf("%s/\n", f.Name)
			}
			for _, l := range lists {
				fmt.Printf("%s  (%d terms)\n", l.Name, len(l.Terms))
			}
			return nil
		},
	}
}

func mkdirCmd(words *service.WordsService) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <path>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parent, name := splitPath(args[0])
			f, err := words.CreateFolder(parent, name)
			if err != nil {
				return err
			}
			fmt.Printf("Created folder %s\n", f.Name)
			return nil
		},
	}
}

func newCmd(words *service.WordsService) *cobra.Command {
	return &cobra.Command{
		Use:   "new <path>",
		Short: "Create an empty list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parent, name := splitPath(args[0])
			l, err := words.CreateList(parent, name)
			if err != nil {
				return err
			}
			fmt.Printf("Created list %s\n", l.Name)
			return nil
		},
	}
}

func addCmd(words *service.WordsService) *cobra.Command {
	return &cobra.Command{
		Use:   "add <list> <question> <answer>",
		Short: "Add a term to a list",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := words.AddTerm(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Printf("Added %s -> %s\n", t.Question, t.Answer)
			return nil
		},
	}
}

func forgetCmd(words *service.WordsService) *cobra.Command {
	return &cobra.Command{
		Use:   "forget <list> <question>",
		Short: "Delete a term from a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := words.RemoveTerm(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Removed %s\n", args[1])
			return nil
		},
	}
}

func importCmd(words *service.WordsService) *cobra.Command {
	var name, folder string

	cmd := &cobra.Command{
		Use:   "import <file.tsv>",
		Short: "Import a TSV file as a new list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				base := filepath.Base(args[0])
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}
			l, err := words.ImportTSV(folder, name, string(raw))
			if err != nil {
				return err
			}
			fmt.Printf("Imported %s (%d terms)\n", l.Name, len(l.Terms))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "list name (default: file name)")
	cmd.Flags().StringVarP(&folder, "folder", "f", "", "destination folder path")
	return cmd
}

func exportCmd(words *service.WordsService) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export <list>",
		Short: "Export a list as TSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := words.ExportTSV(args[0])
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Print(raw)
				return nil
			}
			return os.WriteFile(out, []byte(raw), 0o644)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func showCmd(words *service.WordsService) *cobra.Command {
	return &cobra.Command{
		Use:   "show <list>",
		Short: "Show a list with learning state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := words.ShowList(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s (%d terms)\n", l.Name, len(l.Terms))
			for _, t := range l.Terms {
				fmt.Printf("  %s\t%s\t%d/%d\n", t.Question, t.Answer, t.CorrectStreak, t.SeenCount)
			}
			return nil
		},
	}
}

func rmCmd(words *service.WordsService) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>",
		Short: "Delete a folder (recursively) or list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return words.Delete(args[0])
		},
	}
}

func mvCmd(words *service.WordsService) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <src> <dest-folder>",
		Short: "Move a folder or list into another folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return words.Move(args[0], args[1])
		},
	}
}

func renameCmd(words *service.WordsService) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <path> <new-name>",
		Short: "Rename a folder or list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return words.Rename(args[0], args[1])
		},
	}
}

func practiceCmd(practice *service.PracticeService, cfg *config.Config) *cobra.Command {
	var (
		direction   string
		match       string
		seed        int64
		rotation    int
		maxRequeues int
	)

	cmd := &cobra.Command{
		Use:   "practice [scope]",
		Short: "Practice a list, a folder subtree or everything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := ""
			if len(args) == 1 {
				scope = args[0]
			}

			dir, err := domain.ParseDirection(direction)
			if err != nil {
				return err
			}
			mode, err := session.ParseMatchMode(match)
			if err != nil {
				return err
			}

			sess, err := practice.Start(scope, session.Options{
				Seed:             seed,
				RotationDistance: rotation,
				MaxRequeues:      maxRequeues,
				Match:            mode,
				Direction:        dir,
			})
			if err != nil {
				return err
			}

			title := scope
			if title == "" {
				title = "all lists"
			}
			runErr := tui.Run(sess, title)

			sum, err := practice.Finish(sess)
			if err != nil {
				return err
			}
			if runErr != nil {
				return runErr
			}

			printSummary(sum)
			return nil
		},
	}

	cmd.Flags().StringVarP(&direction, "direction", "d", "td", "asking direction: td, dt or both")
	cmd.Flags().StringVarP(&match, "match", "m", cfg.Practice.Match, "answer matching: fold, exact or lenient")
	cmd.Flags().Int64Var(&seed, "seed", 0, "shuffle seed (0 = random)")
	cmd.Flags().IntVar(&rotation, "rotation", cfg.Practice.RotationDistance, "prompts before a missed term returns")
	cmd.Flags().IntVar(&maxRequeues, "max-requeues", cfg.Practice.MaxRequeues, "re-insertions per term before giving up")
	return cmd
}

func printSummary(sum *domain.Summary) {
	fmt.Printf("Attempted %d, correct %d\n", sum.Attempted, sum.Correct)

	var missed []*domain.Outcome
	for _, o := range sum.Outcomes {
		if !o.Mastered {
			missed = append(missed, o)
		}
	}
	if len(missed) == 0 {
		return
	}
	sort.Slice(missed, func(i, j int) bool { return missed[i].Question < missed[j].Question })
	fmt.Println("Keep practicing:")
	for _, o := range missed {
		fmt.Printf("  %s (%d attempts)\n", o.Question, o.Attempts)
	}
}
