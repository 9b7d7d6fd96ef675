package observability

import (
	"testing"

	"github.com/2cute2die/netzob/internal/testutil/testlog"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)

	RegisterMetrics()
	RegisterMetrics()

	RecordRead("icmp", true)
	RecordRead("icmp", false)
	RecordWrite("icmp", true)
	RecordPatternBuild("icmp")
}
