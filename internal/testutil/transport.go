// internal/testutil/transport.go
package testutil

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// Reply describe lo que FakeTransport responde para una URL.
type Reply struct {
	// Status código HTTP a responder (ignorado si Err o Block están presentes)
	Status int

	// Err error de transporte a retornar
	Err error

	// Delay espera antes de responder (respeta el contexto de la petición)
	Delay time.Duration

	// Block espera hasta que el contexto de la petición termine (simula timeout)
	Block bool
}

// RefusedReply simula una conexión rechazada.
func RefusedReply() Reply {
	return Reply{Err: &net.OpError{
		Op:  "dial",
		Net: "tcp",
		Err: os.NewSyscallError("connect", syscall.ECONNREFUSED),
	}}
}

// FakeTransport es un http.RoundTripper determinista: responde por
// "scheme://host" y cuenta peticiones en vuelo.
type FakeTransport struct {
	mu      sync.Mutex
	replies map[string]Reply
	def     Reply
	calls   map[string]int

	inFlight atomic.Int64
	peak     atomic.Int64
	total    atomic.Int64
}

// NewFakeTransport crea un transporte cuyo default es def. Un default vacío
// equivale a conexión rechazada.
func NewFakeTransport(def Reply) *FakeTransport {
	if def.Status == 0 && def.Err == nil && !def.Block && def.Delay == 0 {
		def = RefusedReply()
	}
	return &FakeTransport{
		replies: make(map[string]Reply),
		def:     def,
		calls:   make(map[string]int),
	}
}

// Set configura la respuesta para una URL ("http://www.example.com").
func (f *FakeTransport) Set(url string, r Reply) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[strings.TrimSuffix(url, "/")] = r
	return f
}

// RoundTrip implementa http.RoundTripper.
func (f *FakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	key := req.URL.Scheme + "://" + req.URL.Host

	f.mu.Lock()
	f.calls[key]++
	r, ok := f.replies[key]
	if !ok {
		r = f.def
	}
	f.mu.Unlock()

	f.total.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	ctx := req.Context()
	if r.Block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if r.Delay > 0 {
		select {
		case <-time.After(r.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if r.Err != nil {
		return nil, r.Err
	}

	return &http.Response{
		Status:     fmt.Sprintf("%d %s", r.Status, http.StatusText(r.Status)),
		StatusCode: r.Status,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader("")),
		Request:    req,
	}, nil
}

// Calls retorna cuántas veces se pidió una URL.
func (f *FakeTransport) Calls(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[strings.TrimSuffix(url, "/")]
}

// Total retorna el número total de peticiones.
func (f *FakeTransport) Total() int64 {
	return f.total.Load()
}

// InFlight retorna las peticiones actualmente en curso.
func (f *FakeTransport) InFlight() int64 {
	return f.inFlight.Load()
}

// Peak retorna el máximo de peticiones simultáneas observado.
func (f *FakeTransport) Peak() int64 {
	return f.peak.Load()
}
