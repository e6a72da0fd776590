// Result CSV writing. One row per estimation run, appended under a single
// header; the file is rewritten through an atomic install so a crashed run
// never leaves a torn row behind.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// resultsHeader matches the long-standing experiment tooling format.
const resultsHeader = "Algo,Params,Oracle,SizeOracle,TimeOracle,MemEdges,GlobalTriangleCount,Time\n"

// resultRow is one estimation run's summary.
type resultRow struct {
	Algo         string  // tristream-ins / tristream-fd
	Alpha        float64
	Beta         float64
	OracleKind   string  // Edges / Nodes / None
	OracleSize   int     // entries in the loaded predictor
	OracleTime   float64 // seconds spent loading the predictor
	MemoryBudget int64
	Estimate     float64
	RunTime      float64 // seconds spent streaming
}

// appendResult appends row to the CSV at path (creating it with a header),
// installing the updated file atomically.
func appendResult(path string, row resultRow) error {
	var buf bytes.Buffer

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		buf.Write(existing)
		if len(existing) > 0 && existing[len(existing)-1] != '\n' {
			buf.WriteByte('\n')
		}
	case os.IsNotExist(err):
		buf.WriteString(resultsHeader)
	default:
		return err
	}

	fmt.Fprintf(&buf, "%s,Alpha=%g-Beta=%g,%s,%d,%.3f,%d,%f,%.3f\n",
		row.Algo, row.Alpha, row.Beta, row.OracleKind, row.OracleSize,
		row.OracleTime, row.MemoryBudget, row.Estimate, row.RunTime)

	return atomic.WriteFile(path, &buf)
}
