package bench

import (
	"context"
	"io"
	"net/http"
)

// Warmup primes the target with count sequential GETs before measurement
// starts, so connection setup and any server-side caching cost is paid
// outside the timed window. Responses and errors alike are discarded;
// warm-up never aborts the run.
func Warmup(ctx context.Context, client *http.Client, url string, count int) {
	for i := 0; i < count; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			continue
		}

		resp, err := client.Do(req)
		if err != nil {
			continue
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}
