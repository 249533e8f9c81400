package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	j "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	bordertax "github.com/reoring/bordertax"
	"github.com/reoring/bordertax/internal/config"
	"github.com/reoring/bordertax/internal/dataset"
	"github.com/reoring/bordertax/internal/stats"
)

// demoCmd walks through every operation once.
func demoCmd(w io.Writer) error {
	fmt.Fprintln(w, "=== Functions ===")
	fmt.Fprintf(w, "add(5, 3) = %d\n", bordertax.Add(5, 3))
	fmt.Fprintf(w, "multiply(4, 7) = %d\n", bordertax.Multiply(4, 7))
	fmt.Fprintf(w, "greet(\"Go Developer\") = %s\n", bordertax.Greet("Go Developer"))

	fmt.Fprintln(w, "\n=== Calculator ===")
	calc := bordertax.NewCalculator(10)
	fmt.Fprintf(w, "initial: %s\n", calc)
	fmt.Fprintf(w, "add(5) = %v\n", calc.Add(5))
	fmt.Fprintf(w, "multiply(2) = %v\n", calc.Multiply(2))
	fmt.Fprintf(w, "reset() = %v\n", calc.Reset())

	fmt.Fprintln(w, "\n=== User ===")
	user := bordertax.NewUser(1, "Alice Johnson", "alice@example.com", 30, true)
	fmt.Fprintf(w, "user: %s\n", user)
	compact, err := user.EncodeJSON()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "json: %s\n", compact)
	pretty, err := user.EncodeJSONPretty()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "pretty:\n%s\n", pretty)
	fmt.Fprintf(w, "map: %v\n", user.AsMap())
	decoded, err := bordertax.DecodeUser(compact)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "decoded: %s\n", decoded)
	modified := user.CopyWith("Alice Smith", user.Email, 31, user.Active)
	fmt.Fprintf(w, "copy: %s (age %d)\n", modified, modified.Age)
	fmt.Fprintf(w, "original: %s (age %d)\n", user, user.Age)

	fmt.Fprintln(w, "\n=== Processing ===")
	loose := []any{
		bordertax.Fields{"active": true, "age": 30},
		bordertax.Fields{"active": false, "age": 99},
		bordertax.Fields{"active": true, "age": 10},
	}
	t, err := bordertax.ProcessIndirect(loose)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "indirect: total_age=%d active_count=%d\n", t.TotalAge, t.ActiveCount)
	r := bordertax.BenchmarkIndirect(append(loose, bordertax.Fields{"age": 1}))
	fmt.Fprintf(w, "indirect benchmark with one broken entity: errors=%d\n", r.Errors)
	return nil
}

// schemaCmd prints the JSON Schema of the User wire format.
func schemaCmd(w io.Writer) error {
	b, err := j.MarshalIndent(bordertax.UserJSONSchema(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// processRow is one line of the process report.
type processRow struct {
	Path   string         `json:"path" yaml:"path"`
	Result map[string]any `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string         `json:"error,omitempty" yaml:"error,omitempty"`
}

func totalsMap(t bordertax.Totals) map[string]any {
	return map[string]any{
		"total_age":    t.TotalAge,
		"active_count": t.ActiveCount,
		"elapsed_us":   t.ElapsedMicros,
	}
}

// entities returns the loose entities from the fixture or a generated dataset.
func entities(log *logrus.Logger, cfg config.Config, fixture string) ([]any, error) {
	if fixture != "" {
		loose, err := dataset.Load(fixture)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{"fixture": fixture, "entities": len(loose)}).Info("fixture loaded")
		return loose, nil
	}
	users := dataset.Generate(cfg.Dataset)
	log.WithFields(logrus.Fields{
		"size":            cfg.Dataset.Size,
		"seed":            cfg.Dataset.Seed,
		"malformed_every": cfg.Dataset.MalformedEvery,
	}).Info("dataset generated")
	return dataset.Loose(users, cfg.Dataset.MalformedEvery), nil
}

func directEntities(log *logrus.Logger, loose []any) []any {
	direct, skipped := dataset.Direct(loose)
	for _, err := range skipped {
		log.WithError(err).Debug("entity left out of the direct path")
	}
	if len(skipped) > 0 {
		log.WithField("skipped", len(skipped)).Warn("entities not usable as User were left out of the direct path")
	}
	return direct
}

// processCmd runs the four processing functions over one dataset.
func processCmd(log *logrus.Logger, w io.Writer, args []string) error {
	var cf commonFlags
	var fixture string
	var size int
	fs := newFlagSet("process", w)
	cf.register(fs)
	fs.StringVar(&fixture, "fixture", "", "fixture file (.json/.yaml, optionally .zst); generated when empty")
	fs.IntVar(&size, "size", -1, "generated dataset size (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := cf.load(log)
	if err != nil {
		return err
	}
	if size >= 0 {
		cfg.Dataset.Size = size
	}

	loose, err := entities(log, cfg, fixture)
	if err != nil {
		return err
	}
	direct := directEntities(log, loose)

	rows := runProcess(log, loose, direct)
	return render(w, cfg.Output.Format, rows, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "PATH\tTOTAL_AGE\tACTIVE\tERRORS\tELAPSED_US\tERROR")
		for _, r := range rows {
			errs := "-"
			if v, ok := r.Result["errors"]; ok {
				errs = fmt.Sprint(v)
			}
			fmt.Fprintf(tw, "%s\t%v\t%v\t%s\t%v\t%s\n",
				r.Path, orDash(r.Result["total_age"]), orDash(r.Result["active_count"]), errs, orDash(r.Result["elapsed_us"]), r.Error)
		}
	})
}

func runProcess(log *logrus.Logger, loose, direct []any) []processRow {
	rows := make([]processRow, 0, 4)
	add := func(path string, result map[string]any, err error) {
		row := processRow{Path: path, Result: result}
		if err != nil {
			row.Result = nil
			row.Error = err.Error()
			log.WithError(err).WithField("path", path).Warn("processing aborted")
		}
		rows = append(rows, row)
	}

	t, err := bordertax.ProcessIndirect(loose)
	add("process_indirect", totalsMap(t), err)
	t, err = bordertax.ProcessDirect(direct)
	add("process_direct", totalsMap(t), err)
	add("benchmark_indirect", bordertax.BenchmarkIndirect(loose).AsMap(), nil)
	r, err := bordertax.BenchmarkDirect(direct)
	add("benchmark_direct", r.AsMap(), err)
	return rows
}

func orDash(v any) any {
	if v == nil {
		return "-"
	}
	return v
}

// benchReport is the output of benchCmd.
type benchReport struct {
	Iterations int             `json:"iterations" yaml:"iterations"`
	Results    []stats.Summary `json:"results" yaml:"results"`
	Speedups   []speedup       `json:"speedups" yaml:"speedups"`
}

type speedup struct {
	Name  string  `json:"name" yaml:"name"`
	Ratio float64 `json:"ratio" yaml:"ratio"`
}

// benchCmd times every User operation and both processing paths.
func benchCmd(log *logrus.Logger, w io.Writer, args []string) error {
	var cf commonFlags
	var n, runs int
	fs := newFlagSet("bench", w)
	cf.register(fs)
	fs.IntVar(&n, "n", 0, "iterations per User operation (overrides config)")
	fs.IntVar(&runs, "runs", 100, "iterations per processing path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := cf.load(log)
	if err != nil {
		return err
	}
	if n > 0 {
		cfg.Bench.Iterations = n
	}
	if cfg.Bench.Iterations < 2 || runs < 2 {
		return errors.New("bench: iterations and runs must be >= 2")
	}

	rep, err := runBench(log, cfg, runs)
	if err != nil {
		return err
	}
	return render(w, cfg.Output.Format, rep, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "OPERATION\tMEAN_US\tMEDIAN_US\tSTDEV\tMIN_US\tMAX_US")
		for _, s := range rep.Results {
			fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n", s.Name, s.Mean, s.Median, s.Stdev, s.Min, s.Max)
		}
		for _, s := range rep.Speedups {
			fmt.Fprintf(tw, "%s\t%.2fx\t\t\t\t\n", s.Name, s.Ratio)
		}
	})
}

const benchJSON = `{"id":1,"name":"Alice Johnson","email":"alice@example.com","age":30,"active":true}`

func runBench(log *logrus.Logger, cfg config.Config, runs int) (benchReport, error) {
	iters := cfg.Bench.Iterations
	user := bordertax.NewUser(1, "Alice Johnson", "alice@example.com", 30, true)
	ops := []struct {
		name string
		fn   func() error
	}{
		{"User.EncodeJSON", func() error { _, err := user.EncodeJSON(); return err }},
		{"User.EncodeJSONPretty", func() error { _, err := user.EncodeJSONPretty(); return err }},
		{"DecodeUser", func() error { _, err := bordertax.DecodeUser(benchJSON); return err }},
		{"User.AsMap", func() error { _ = user.AsMap(); return nil }},
		{"User.CopyWith", func() error { _ = user.CopyWith("Alice Smith", user.Email, 31, user.Active); return nil }},
	}

	rep := benchReport{Iterations: iters}
	for _, op := range ops {
		s, err := stats.Measure(op.name, iters, op.fn)
		if err != nil {
			return benchReport{}, fmt.Errorf("%s: %w", op.name, err)
		}
		log.WithFields(logrus.Fields{"op": op.name, "mean_us": s.Mean}).Debug("measured")
		rep.Results = append(rep.Results, s)
	}

	users := dataset.Generate(cfg.Dataset)
	loose := dataset.Loose(users, 0)
	direct := bordertax.AsEntities(users)
	indirect, err := stats.Measure("ProcessIndirect", runs, func() error { _, err := bordertax.ProcessIndirect(loose); return err })
	if err != nil {
		return benchReport{}, err
	}
	directSum, err := stats.Measure("ProcessDirect", runs, func() error { _, err := bordertax.ProcessDirect(direct); return err })
	if err != nil {
		return benchReport{}, err
	}
	rep.Results = append(rep.Results, indirect, directSum)
	// A zero mean yields +Inf, which JSON cannot carry.
	if ratio := stats.Speedup(indirect, directSum); !math.IsInf(ratio, 0) {
		rep.Speedups = append(rep.Speedups, speedup{
			Name:  fmt.Sprintf("direct vs indirect (%d users)", len(users)),
			Ratio: ratio,
		})
	}
	return rep, nil
}

// generateCmd writes a generated dataset as a fixture.
func generateCmd(log *logrus.Logger, stderr io.Writer, args []string) error {
	var cf commonFlags
	var out string
	var size int
	fs := newFlagSet("generate", stderr)
	cf.register(fs)
	fs.StringVar(&out, "o", "", "output fixture (.json/.yaml, optionally .zst)")
	fs.IntVar(&size, "size", -1, "dataset size (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if out == "" {
		return errors.New("generate: -o is required")
	}
	cfg, err := cf.load(log)
	if err != nil {
		return err
	}
	if size >= 0 {
		cfg.Dataset.Size = size
	}
	users := dataset.Generate(cfg.Dataset)
	if err := dataset.Save(out, users); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"out": out, "users": len(users)}).Info("fixture written")
	return nil
}
