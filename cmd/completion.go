package cmd

import (
	"flag"

	"github.com/etnz/moneymetrics"
	"github.com/etnz/moneymetrics/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// argsPredictors predicts the positional arguments of commands that take
// dataset names or screen titles.
var argsPredictors = map[string]complete.Predictor{
	"export":    complete.PredictFunc(datasetNames),
	"rm":        complete.PredictFunc(datasetNames),
	"query":     complete.PredictFunc(datasetNames),
	"import":    predict.Files("*.json"),
	"screen-rm": complete.PredictFunc(screenTitles),
	"rename":    complete.PredictFunc(screenTitles),
	"attach":    complete.PredictFunc(screenTitles),
	"detach":    complete.PredictFunc(screenTitles),
	"toggle":    complete.PredictFunc(screenTitles),
	"series":    complete.PredictFunc(screenTitles),
	"show":      complete.PredictFunc(screenTitles),
	"publish":   complete.PredictFunc(screenTitles),
	"topic":     complete.PredictFunc(topicNames),
}

// flagPredictors predicts flag values by flag name.
var flagPredictors = map[string]complete.Predictor{
	"d":       complete.PredictFunc(datasetNames),
	"o":       predict.Files("*"),
	"profile": predict.Files("*.json"),
}

// Completion returns the shell completion of the mm command line.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagsOf(flag.CommandLine),
	}
	for _, cmds := range Commands() {
		for _, c := range cmds {
			f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(f)
			root.Sub[c.Name()] = &complete.Command{
				Flags: flagsOf(f),
				Args:  argsPredictors[c.Name()],
			}
		}
	}
	return root
}

// flagsOf maps every flag of f to its predictor, anything goes by default.
func flagsOf(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		p, ok := flagPredictors[fl.Name]
		if !ok {
			p = predict.Something
		}
		// boolean flags take no value.
		if b, isBool := fl.Value.(interface{ IsBoolFlag() bool }); isBool && b.IsBoolFlag() {
			p = predict.Nothing
		}
		flags[fl.Name] = p
	})
	return flags
}

// openProfile loads the profile for completion, errors yield an empty workspace.
func openProfile() *moneymetrics.Workspace {
	p, err := moneymetrics.LoadProfile(*profileFile)
	if err != nil {
		return moneymetrics.NewWorkspace()
	}
	w, err := moneymetrics.OpenWorkspace(p)
	if err != nil {
		return moneymetrics.NewWorkspace()
	}
	return w
}

func datasetNames(string) []string {
	return openProfile().Datasets.Names()
}

func screenTitles(string) []string {
	var titles []string
	for s := range openProfile().Screens() {
		titles = append(titles, s.Title)
	}
	return titles
}

func topicNames(string) []string {
	topics, _ := docs.Topics()
	return topics
}
