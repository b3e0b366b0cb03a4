package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abonetti/vetprep/internal/content"
	"github.com/abonetti/vetprep/internal/curriculum"
	"github.com/abonetti/vetprep/internal/progress"
	"github.com/abonetti/vetprep/internal/progression"
	"github.com/abonetti/vetprep/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics without opening the app",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, progressStore, err := openStores(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		engine := progression.NewEngine(progressStore)

		results := progressStore.Results()
		fmt.Printf("Sessions completed:  %d\n", len(results))

		for _, y := range []curriculum.Year{curriculum.YearOne, curriculum.YearTwo} {
			fmt.Printf("Year %d badges:       %d/%d\n",
				y, len(engine.BadgesForYear(y)), len(curriculum.Subjects(y)))
		}

		switch {
		case engine.FinalExamUnlocked():
			fmt.Println("Exams unlocked:      Year 1, Final")
		case engine.ExamYear1Unlocked():
			fmt.Println("Exams unlocked:      Year 1")
		default:
			fmt.Println("Exams unlocked:      none")
		}

		weak := engine.Weakest()
		if weak.Unlocked {
			fmt.Printf("Weakest module:      %s (%.0f%% average)\n", weak.Subject, weak.AverageAccuracy)
		} else {
			fmt.Printf("Weakest module:      locked (quiz history for %d/%d subjects)\n",
				weak.DistinctSubjects, progression.WeakestMinSubjects)
		}
		return nil
	},
}

// openStores opens the database and hydrates in-memory stores for one-shot
// commands.
func openStores(cmd *cobra.Command) (*storage.Store, *content.Store, *progress.Store, error) {
	dbPath, err := resolveDBPath(cmd, "")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := storage.Open(dbPath, nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open store: %w", err)
	}
	contentStore := content.NewStore()
	progressStore := progress.NewStore()
	storage.LoadStores(st, contentStore, progressStore)
	return st, contentStore, progressStore, nil
}
