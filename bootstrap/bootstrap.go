package bootstrap

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fulldump/box"

	"github.com/fulldump/blurcars/api"
	"github.com/fulldump/blurcars/configuration"
	"github.com/fulldump/blurcars/database"
	"github.com/fulldump/blurcars/service"
)

var VERSION = "dev"

// Bootstrap wires the database, the service and the HTTP server. start blocks
// until stop is called or a SIGTERM/SIGINT arrives.
func Bootstrap(c *configuration.Configuration) (start, stop func(), err error) {

	db := database.NewDatabase(&database.Config{
		Dir:      c.Dir,
		Filename: c.Filename,
	})

	b := api.Build(service.NewService(db), VERSION, c.ApiKey, c.ApiSecret)
	if c.EnableCompression {
		b.WithInterceptors(api.Compression)
	}
	b.WithInterceptors(
		api.RequestID,
		api.AccessLog(log.New(os.Stdout, "ACCESS: ", log.Lshortfile)),
		api.PrettyErrorInterceptor,
		api.RecoverFromPanic,
		api.InterceptorUnavailable(db),
	)

	s := &http.Server{
		Addr:    c.HttpAddr,
		Handler: box.Box2Http(b),
	}

	ln, err := net.Listen("tcp", c.HttpAddr)
	if err != nil {
		return nil, nil, fmt.Errorf("listen %s: %w", c.HttpAddr, err)
	}
	log.Println("listening on", ln.Addr().String())

	stopOnce := &sync.Once{}
	stop = func() {
		stopOnce.Do(func() {
			db.Stop()
			s.Shutdown(context.Background())
		})
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-signalChan
		fmt.Println("Signal received", sig.String())
		stop()
	}()

	start = func() {

		wg := &sync.WaitGroup{}

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.Start()
			if err != nil {
				fmt.Println(err.Error())
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Serve(ln)
			if err != nil && err != http.ErrServerClosed {
				fmt.Println(err.Error())
			}
		}()

		wg.Wait()
	}

	return start, stop, nil
}
