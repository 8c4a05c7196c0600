package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Tbit256/Process-Flowchart/internal/app/usecases"
	coregraph "github.com/Tbit256/Process-Flowchart/internal/core/graph"
	"github.com/Tbit256/Process-Flowchart/internal/infrastructure/config"
	"github.com/Tbit256/Process-Flowchart/internal/infrastructure/logging"
	"github.com/Tbit256/Process-Flowchart/pkg/flowchart"
	"github.com/Tbit256/Process-Flowchart/pkg/validation"
)

// Script is a recorded editing session
type Script struct {
	Canvas flowchart.Rect `yaml:"canvas"`
	Steps  []Step         `yaml:"steps"`
}

// Step is one gesture. Exactly one field is set.
type Step struct {
	Drop        *DropStep             `yaml:"drop,omitempty"`
	Connect     *coregraph.Connection `yaml:"connect,omitempty"`
	NodeChanges string                `yaml:"nodeChanges,omitempty"`
	EdgeChanges string                `yaml:"edgeChanges,omitempty"`
	Label       *LabelStep            `yaml:"label,omitempty"`
	Inspect     *InspectStep          `yaml:"inspect,omitempty"`
	Details     *DetailsStep          `yaml:"details,omitempty"`
}

// DropStep drops a palette item at client coordinates
type DropStep struct {
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// LabelStep edits a node label, or an edge label when Edge is set. Edges
// are addressed by their index in the current edge collection.
type LabelStep struct {
	Node   string `yaml:"node,omitempty"`
	Edge   *int   `yaml:"edge,omitempty"`
	Text   string `yaml:"text"`
	Cancel bool   `yaml:"cancel,omitempty"`
}

// InspectStep opens the edge inspector and applies its fields in order
type InspectStep struct {
	Edge   int                  `yaml:"edge" validate:"min=0"`
	Style  string               `yaml:"style,omitempty" validate:"omitempty,edge_style"`
	Color  string               `yaml:"color,omitempty" validate:"omitempty,hexcolor"`
	Label  *string              `yaml:"label,omitempty"`
	Toggle []coregraph.ArrowEnd `yaml:"toggle,omitempty" validate:"dive,arrow_end"`
}

// DetailsStep drives the details menu of a node
type DetailsStep struct {
	Node       string   `yaml:"node"`
	Assign     []string `yaml:"assign,omitempty"`
	Unassign   []string `yaml:"unassign,omitempty"`
	Automation int      `yaml:"automation,omitempty"`
	Apps       []string `yaml:"apps,omitempty"`
	CustomApps []string `yaml:"customApps,omitempty"`
}

var errEmptyStep = errors.New("step names no gesture")

func newReplayCmd() *cobra.Command {
	var showMetrics bool

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a gesture script and print the resulting diagram as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read script: %w", err)
			}
			script, err := parseScript(data)
			if err != nil {
				return err
			}

			cfg, err := config.Load(envFiles...)
			if err != nil {
				return err
			}
			// The frame is printed for humans
			cfg.Wire.Codec = "json"
			cfg.Wire.Compression = "none"

			logger, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			session, err := flowchart.NewSession(cfg, logger, usecases.FixedCanvas(script.Canvas))
			if err != nil {
				return err
			}
			defer session.Close()

			applied := replay(session, script, cmd.ErrOrStderr(), logger)
			logger.Info("replay finished", zap.Int("steps", len(script.Steps)), zap.Int("applied", applied))

			for _, e := range session.DanglingEdges() {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: edge %s references a removed node (%s -> %s)\n", e.ID, e.Source, e.Target)
			}

			frame, err := session.Frame()
			if err != nil {
				return err
			}
			var out bytes.Buffer
			if err := json.Indent(&out, frame, "", "  "); err != nil {
				return err
			}
			out.WriteByte('\n')
			if _, err := cmd.OutOrStdout().Write(out.Bytes()); err != nil {
				return err
			}

			if showMetrics {
				return writeMetrics(cmd.ErrOrStderr(), prometheus.DefaultGatherer)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print store and gesture counters to stderr after the replay")
	return cmd
}

func parseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	return &s, nil
}

// replay runs every step and returns how many changed the diagram. Steps
// that change nothing are reported on warn and skipped.
func replay(s *flowchart.Session, script *Script, warn io.Writer, logger *zap.Logger) int {
	applied := 0
	for i, step := range script.Steps {
		ok, err := runStep(s, step)
		switch {
		case err != nil:
			fmt.Fprintf(warn, "step %d: %v\n", i+1, err)
		case !ok:
			fmt.Fprintf(warn, "step %d: ignored\n", i+1)
		default:
			applied++
		}
		logger.Debug("step replayed", zap.Int("step", i+1), zap.Bool("applied", ok), zap.Error(err))
	}
	return applied
}

func runStep(s *flowchart.Session, step Step) (bool, error) {
	switch {
	case step.Drop != nil:
		drag := usecases.StartDrag(coregraph.NodeKind(step.Drop.Kind))
		_, ok := s.Palette().Drop(flowchart.DropEvent{Data: drag.Data, ClientX: step.Drop.X, ClientY: step.Drop.Y})
		return ok, nil

	case step.Connect != nil:
		_, ok := s.Connector().Complete(*step.Connect)
		return ok, nil

	case step.NodeChanges != "":
		return s.ApplyNodeChanges([]byte(step.NodeChanges))

	case step.EdgeChanges != "":
		return s.ApplyEdgeChanges([]byte(step.EdgeChanges))

	case step.Label != nil:
		return runLabel(s, step.Label)

	case step.Inspect != nil:
		return runInspect(s, step.Inspect)

	case step.Details != nil:
		return runDetails(s, step.Details), nil
	}
	return false, errEmptyStep
}

func runLabel(s *flowchart.Session, l *LabelStep) (bool, error) {
	var ed *usecases.LabelEditor
	if l.Edge != nil {
		id, err := edgeAt(s, *l.Edge)
		if err != nil {
			return false, err
		}
		ed = s.EdgeLabelEditor(id)
	} else {
		ed = s.NodeLabelEditor(l.Node)
	}

	if !ed.Activate() {
		return false, nil
	}
	ed.Input(l.Text)
	if l.Cancel {
		ed.KeyDown(usecases.KeyEscape)
		return false, nil
	}
	return ed.KeyDown(usecases.KeyEnter), nil
}

func runInspect(s *flowchart.Session, in *InspectStep) (bool, error) {
	if err := validation.ValidateWithPlayground(in); err != nil {
		return false, err
	}
	id, err := edgeAt(s, in.Edge)
	if err != nil {
		return false, err
	}
	insp := s.Inspector()
	if !insp.Open(id) {
		return false, nil
	}
	defer insp.Close()

	ok := false
	if in.Style != "" {
		ok = insp.SetStyle(coregraph.EdgeStyle(in.Style)) || ok
	}
	if in.Color != "" {
		ok = insp.SetColor(in.Color) || ok
	}
	if in.Label != nil {
		ok = insp.SetLabel(*in.Label) || ok
	}
	for _, end := range in.Toggle {
		ok = insp.ToggleArrow(end) || ok
	}
	return ok, nil
}

func runDetails(s *flowchart.Session, d *DetailsStep) bool {
	menu := s.DetailsMenu(d.Node)
	ok := false
	for _, name := range d.Assign {
		ok = menu.AddAssignee(name) || ok
	}
	for _, name := range d.Unassign {
		ok = menu.RemoveAssignee(name) || ok
	}
	for i := 0; i < d.Automation; i++ {
		ok = menu.CycleAutomation() || ok
	}
	for _, app := range d.Apps {
		ok = menu.ToggleApp(app) || ok
	}
	for _, app := range d.CustomApps {
		ok = menu.AddCustomApp(app) || ok
	}
	return ok
}

func edgeAt(s *flowchart.Session, i int) (string, error) {
	edges := s.Snapshot().Edges
	if i < 0 || i >= len(edges) {
		return "", fmt.Errorf("no edge at index %d (have %d)", i, len(edges))
	}
	return edges[i].ID, nil
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "flowchart_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
