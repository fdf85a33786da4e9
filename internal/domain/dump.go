package domain

import (
	"fmt"
	"io"
	"strconv"

	"fortio.org/safecast"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"

	m "github.com/mouse-blink/faultline/internal/model"
)

// DumpAllocations writes every record the tracker holds, oldest first, as a
// JSON document:
//
//	{"Live": 1, "Calls": 2, "Mode": "leak-check", "Blocks": [{"ID": 1, ...}]}
func DumpAllocations(w io.Writer, tracker Tracker) error {
	writer := jwriter.NewWriter()

	objState := writer.Object()
	objState.Name("Live").Int(tracker.LiveCount())
	writeCount(objState.Name("Calls"), tracker.CallCount())
	objState.Name("Mode").String(tracker.Mode().String())

	blocks := objState.Name("Blocks").Array()

	for rec := range tracker.Enumerate() {
		printRecord(&blocks, rec)
	}

	blocks.End()
	objState.End()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to encode allocations: %w", err)
	}

	if _, err := w.Write(writer.Bytes()); err != nil {
		return fmt.Errorf("failed to write allocations: %w", err)
	}

	return nil
}

func printRecord(json *jwriter.ArrayState, rec m.AllocationRecord) {
	obj := json.Object()
	defer obj.End()

	writeCount(obj.Name("ID"), rec.ID)
	obj.Name("Size").Int(rec.Size)
	writeCount(obj.Name("Ordinal"), rec.Ordinal)
	obj.Name("Flags").String(rec.Flags.String())
	obj.Name("Freeable").Bool(rec.Freeable())
	obj.Name("Site").String(rec.Site.String())

	if rec.ReallocPrev != 0 {
		writeCount(obj.Name("ReallocPrev"), rec.ReallocPrev)
	}

	if rec.ReallocNext != 0 {
		writeCount(obj.Name("ReallocNext"), rec.ReallocNext)
	}
}

// writeCount writes n as a JSON number, or as a string when it does not fit
// an int.
func writeCount(w *jwriter.Writer, n uint64) {
	v, err := safecast.Conv[int](n)
	if err != nil {
		w.String(strconv.FormatUint(n, 10))

		return
	}

	w.Int(v)
}
