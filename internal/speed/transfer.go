package speed

import (
	"context"
	"errors"
	"fmt"

	st "github.com/showwin/speedtest-go/speedtest"
)

// minTransferBytes is the least traffic a round must move to count. Error
// pages from a failing server stay well below it.
const minTransferBytes = 64 << 10

// errNoTransfer marks a round that moved no measurable data
var errNoTransfer = errors.New("no data transferred")

// transfer runs one round of each direction and reports the rate in Mbps
// together with the bytes moved
type transfer interface {
	Download(ctx context.Context) (mbps float64, n int64, err error)
	Upload(ctx context.Context) (mbps float64, n int64, err error)
}

// serverTransfer runs rounds against a speedtest.net server. The library
// reports a failed round through the rate (-1 or near zero), not an error.
type serverTransfer struct {
	stc    *st.Speedtest
	server *st.Server
}

func (t *serverTransfer) Download(ctx context.Context) (float64, int64, error) {
	t.stc.Reset()
	if err := t.server.DownloadTestContext(ctx); err != nil {
		return 0, 0, err
	}
	return checkRound(t.server.DLSpeed, t.stc.GetTotalDownload())
}

func (t *serverTransfer) Upload(ctx context.Context) (float64, int64, error) {
	t.stc.Reset()
	if err := t.server.UploadTestContext(ctx); err != nil {
		return 0, 0, err
	}
	return checkRound(t.server.ULSpeed, t.stc.GetTotalUpload())
}

// checkRound validates the outcome of one round
func checkRound(rate st.ByteRate, n int64) (float64, int64, error) {
	if rate <= 0 {
		return 0, n, fmt.Errorf("%w: rate unavailable", errNoTransfer)
	}
	if n < minTransferBytes {
		return 0, n, fmt.Errorf("%w: %d bytes", errNoTransfer, n)
	}
	return rate.Mbps(), n, nil
}
