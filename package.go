package qdd

import (
	"os"

	"github.com/charmbracelet/log"
)

// defaultLogger is shared by every Package that has not installed its
// own logger via SetLogger: stderr, warn level, no timestamps.
var defaultLogger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Level:           log.WarnLevel,
	Prefix:          "qdd",
})

// Package owns every table the core algorithms touch: the unique
// table, the complex-number interner and scratch cache, and the
// compute tables for every named operation. It is not safe for
// concurrent use -- callers run one Package per goroutine.
type Package struct {
	config  *Config
	nqubits int

	unique  *UniqueTable
	complex *ComplexNumbers

	vectorAdd                 *ComputeTable
	matrixAdd                 *ComputeTable
	matrixMultiplication      *ComputeTable
	matrixVectorMultiplication *ComputeTable
	matrixKronecker           *ComputeTable
	vectorKronecker           *ComputeTable
	vectorInnerProduct        *ComputeTable
	matrixTranspose           *UnaryComputeTable
	conjugateMatrixTranspose  *UnaryComputeTable

	toffoli    *ToffoliTable
	operations *OperationTable
	identities *identityCache

	logger *log.Logger
}

// NewPackage constructs a Package sized for nqubits variables, applying
// any Options over the package's default tuning.
func NewPackage(nqubits int, opts ...Option) (*Package, error) {
	cfg := defaultConfig(opts...)
	if nqubits > cfg.MaxQubits {
		return nil, ErrCapacityExceeded
	}

	p := &Package{
		config:  cfg,
		nqubits: nqubits,
		unique:  newUniqueTable(nqubits, cfg.NodeGCLimit),
		complex: newComplexNumbers(cfg.Tolerance, cfg.CacheSize, cfg.MagnitudeGCLimit),

		vectorAdd:                  newComputeTable(),
		matrixAdd:                  newComputeTable(),
		matrixMultiplication:       newComputeTable(),
		matrixVectorMultiplication: newComputeTable(),
		matrixKronecker:            newComputeTable(),
		vectorKronecker:            newComputeTable(),
		vectorInnerProduct:         newComputeTable(),
		matrixTranspose:            newUnaryComputeTable(),
		conjugateMatrixTranspose:   newUnaryComputeTable(),

		toffoli:    newToffoliTable(),
		operations: newOperationTable(),
		identities: newIdentityCache(),

		logger: defaultLogger,
	}
	return p, nil
}

// SetLogger installs a logger for diagnostics: CheckLocal/CheckGlobal
// invariant violations (warn level) and GC summaries (debug level).
// Refcount saturation is not logged; it only freezes the count.
func (p *Package) SetLogger(l *log.Logger) {
	if l != nil {
		p.logger = l
	}
}

// NumQubits returns the qubit count the Package currently supports.
func (p *Package) NumQubits() int { return p.nqubits }

// CacheCount exposes the scratch cache depth in use, for the
// cache-balance invariant asserted around every public call.
func (p *Package) CacheCount() int { return p.complex.CacheCount() }

// Resize grows the Package to support nvars qubits. Shrinking is
// rejected: existing diagrams may reference levels being dropped.
func (p *Package) Resize(nvars int) error {
	if nvars > p.config.MaxQubits {
		return ErrCapacityExceeded
	}
	if nvars < p.nqubits {
		return ErrInvalidLevel
	}
	p.unique.resize(nvars)
	p.nqubits = nvars
	return nil
}

// IncRef increments an edge's node and weight reference counts.
func (p *Package) IncRef(e Edge) { p.unique.incRef(e, p.complex) }

// DecRef decrements an edge's node and weight reference counts.
func (p *Package) DecRef(e Edge) { p.unique.decRef(e, p.complex) }

// GarbageCollect reclaims unreferenced nodes and magnitudes, clearing
// every compute/toffoli/operation/identity table since a GC pass may
// have freed entries they reference.
func (p *Package) GarbageCollect(force bool) bool {
	nodeCollected := p.unique.garbageCollect(force)
	magCollected := p.complex.table.garbageCollect(force)
	if nodeCollected || magCollected {
		p.ClearComputeTables()
		p.logger.Debug("garbage collected", "nodes", nodeCollected, "magnitudes", magCollected)
	}
	return nodeCollected || magCollected
}

// ClearComputeTables invalidates every memoization cache without
// touching the unique or complex tables.
func (p *Package) ClearComputeTables() {
	p.vectorAdd.clear()
	p.matrixAdd.clear()
	p.matrixMultiplication.clear()
	p.matrixVectorMultiplication.clear()
	p.matrixKronecker.clear()
	p.vectorKronecker.clear()
	p.vectorInnerProduct.clear()
	p.matrixTranspose.clear()
	p.conjugateMatrixTranspose.clear()
	p.toffoli.clear()
	p.operations.clear()
	p.identities.clear()
}

// ClearUniqueTables empties the unique table and the complex table,
// returning every node to the node free list and discarding every
// magnitude except the permanent zero and one.
func (p *Package) ClearUniqueTables() {
	p.unique.clear()
	p.complex.table.clear()
}

// Reset restores the Package to its just-constructed state: every
// table cleared, including the scratch cache free list and, in the unique
// and complex tables, the hash buckets themselves rather than just
// their statistics.
func (p *Package) Reset() {
	p.ClearComputeTables()
	p.ClearUniqueTables()
	p.complex.resetCache()
}
