package scan

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"

	"nexafs/internal/fileutil"
	"nexafs/internal/logging"
)

// Measurement is a single angle-resolved data file inside an edge directory.
type Measurement struct {
	File  string `json:"file"`
	Angle string `json:"angle"`
	// Marked reports whether the filename carried the "deg" angle marker.
	// Unmarked files still yield an angle (the tail of the stem) to match
	// the historical loader, but deserve a closer look.
	Marked bool `json:"marked"`
}

// Edge is one absorption edge directory of a molecule.
type Edge struct {
	Name         string        `json:"name"`
	Label        string        `json:"label"`
	Measurements []Measurement `json:"measurements"`
}

// Molecule is one molecule directory of the archive.
type Molecule struct {
	Name  string `json:"name"`
	Edges []Edge `json:"edges"`
	// SkippedEdges lists edge directories left unprocessed by the
	// single-edge traversal policy.
	SkippedEdges []string `json:"skipped_edges,omitempty"`
}

// Result is the outcome of one archive walk.
type Result struct {
	Root      string     `json:"root"`
	Molecules []Molecule `json:"molecules"`
}

// Measurements returns the total number of measurements across all edges.
func (r *Result) Measurements() int {
	total := 0
	for _, molecule := range r.Molecules {
		for _, edge := range molecule.Edges {
			total += len(edge.Measurements)
		}
	}
	return total
}

// Edges returns the total number of processed edge directories.
func (r *Result) Edges() int {
	total := 0
	for _, molecule := range r.Molecules {
		total += len(molecule.Edges)
	}
	return total
}

// SkippedEdges returns the total number of edge directories skipped by the
// single-edge traversal policy.
func (r *Result) SkippedEdges() int {
	total := 0
	for _, molecule := range r.Molecules {
		total += len(molecule.SkippedEdges)
	}
	return total
}

// Options adjusts scanner behavior.
type Options struct {
	// AllEdges processes every edge directory per molecule. The default
	// reproduces the historical loader, which stopped after the first
	// edge of each molecule. That early stop predates this rewrite and
	// looks unintentional, so skipped edges are recorded and logged.
	AllEdges bool
	// Extension selects measurement files; defaults to ".txt".
	Extension string
	// CalibrationDir is the root subdirectory excluded from the molecule
	// listing; defaults to "Energy Calibration".
	CalibrationDir string
	// IncludeCalibration walks the calibration directory as a regular
	// molecule instead of excluding it.
	IncludeCalibration bool
	// OnMeasurement, when set, is invoked for each measurement as it is
	// found, in traversal order.
	OnMeasurement func(molecule string, edge Edge, m Measurement)
	// Logger receives traversal diagnostics. Nil means no logging.
	Logger *slog.Logger
}

// Scanner walks a measurement archive rooted at a single directory.
type Scanner struct {
	root string
	opts Options
}

// DefaultCalibrationDir is the root subdirectory holding energy
// calibration references rather than molecule measurements.
const DefaultCalibrationDir = "Energy Calibration"

// NewScanner constructs a scanner for the archive rooted at root.
func NewScanner(root string, opts Options) *Scanner {
	if opts.Extension == "" {
		opts.Extension = ".txt"
	}
	if opts.CalibrationDir == "" {
		opts.CalibrationDir = DefaultCalibrationDir
	}
	opts.Logger = logging.NewComponentLogger(opts.Logger, "scanner")
	return &Scanner{root: root, opts: opts}
}

// Run walks the archive and returns everything it derived. The walk is
// read-only; ctx cancellation is honoured between directories.
func (s *Scanner) Run(ctx context.Context) (*Result, error) {
	if err := s.checkRoot(); err != nil {
		return nil, err
	}

	names, err := fileutil.Subdirs(s.root)
	if err != nil {
		return nil, Wrap(nil, "list molecules", "", err)
	}

	result := &Result{Root: s.root, Molecules: make([]Molecule, 0, len(names))}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !s.opts.IncludeCalibration && name == s.opts.CalibrationDir {
			s.opts.Logger.Debug("skipping calibration directory", logging.Args(logging.String(logging.FieldMolecule, name))...)
			continue
		}
		molecule, err := s.scanMolecule(ctx, name)
		if err != nil {
			return nil, err
		}
		result.Molecules = append(result.Molecules, molecule)
	}

	s.opts.Logger.Info(
		"scan complete",
		logging.Args(
			logging.Int("molecules", len(result.Molecules)),
			logging.Int("edges", result.Edges()),
			logging.Int("measurements", result.Measurements()),
			logging.Int("skipped_edges", result.SkippedEdges()),
		)...,
	)
	return result, nil
}

func (s *Scanner) checkRoot() error {
	ok, err := fileutil.IsDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Wrap(ErrNotFound, "open archive", "data root "+s.root+" does not exist", nil)
		}
		return Wrap(nil, "open archive", "", err)
	}
	if !ok {
		return Wrap(ErrConfiguration, "open archive", "data root "+s.root+" is not a directory", nil)
	}
	return nil
}

func (s *Scanner) scanMolecule(ctx context.Context, name string) (Molecule, error) {
	moleculeDir := filepath.Join(s.root, name)
	edgeNames, err := fileutil.Subdirs(moleculeDir)
	if err != nil {
		return Molecule{}, Wrap(nil, "list edges", "molecule "+name, err)
	}

	molecule := Molecule{Name: name}
	for i, edgeName := range edgeNames {
		if err := ctx.Err(); err != nil {
			return Molecule{}, err
		}
		edge, err := s.scanEdge(name, moleculeDir, edgeName)
		if err != nil {
			return Molecule{}, err
		}
		molecule.Edges = append(molecule.Edges, edge)
		if !s.opts.AllEdges {
			molecule.SkippedEdges = append(molecule.SkippedEdges, edgeNames[i+1:]...)
			break
		}
	}

	if len(molecule.SkippedEdges) > 0 {
		s.opts.Logger.Warn(
			"further edges skipped; rerun with all edges enabled to process them",
			logging.Args(
				logging.String(logging.FieldMolecule, name),
				logging.Int("skipped", len(molecule.SkippedEdges)),
			)...,
		)
	}
	return molecule, nil
}

func (s *Scanner) scanEdge(moleculeName, moleculeDir, edgeName string) (Edge, error) {
	edgeDir := filepath.Join(moleculeDir, edgeName)
	files, err := fileutil.FilesWithSuffix(edgeDir, s.opts.Extension)
	if err != nil {
		return Edge{}, Wrap(nil, "list measurements", "edge "+edgeName, err)
	}

	edge := Edge{Name: edgeName, Label: EdgeLabel(edgeName)}
	for _, file := range files {
		angle, marked := ParseAngle(file)
		measurement := Measurement{File: file, Angle: angle, Marked: marked}
		if !marked {
			s.opts.Logger.Warn(
				"filename has no angle marker",
				logging.Args(
					logging.String(logging.FieldMolecule, moleculeName),
					logging.String(logging.FieldEdge, edgeName),
					logging.String(logging.FieldFile, file),
				)...,
			)
		}
		edge.Measurements = append(edge.Measurements, measurement)
		if s.opts.OnMeasurement != nil {
			s.opts.OnMeasurement(moleculeName, edge, measurement)
		}
	}
	return edge, nil
}
