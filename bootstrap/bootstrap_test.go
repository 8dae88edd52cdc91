package bootstrap

import (
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"

	"github.com/fulldump/blurcars/configuration"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	return ln.Addr().String()
}

func TestBootstrap(t *testing.T) {

	c := configuration.Default()
	c.HttpAddr = freeAddr(t)
	c.Dir = t.TempDir()

	start, stop, err := Bootstrap(c)
	biff.AssertNil(err)

	done := make(chan struct{})
	go func() {
		start()
		close(done)
	}()

	api := apitest.NewWithBase("http://" + c.HttpAddr)

	status := 0
	for deadline := time.Now().Add(5 * time.Second); time.Now().Before(deadline); {
		resp := api.Request("GET", "/cars").Do()
		status = resp.StatusCode
		resp.BodyClose()
		if status == http.StatusOK {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	biff.AssertEqual(status, http.StatusOK)

	stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("start did not return after stop")
	}
}
