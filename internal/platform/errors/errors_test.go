package errors

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"

	"subprobe/internal/testutil"
)

func TestWrap(t *testing.T) {
	t.Run("wraps error with context", func(t *testing.T) {
		baseErr := New("base error")
		wrapped := Wrap(baseErr, "additional context")

		testutil.AssertNotNil(t, wrapped, "wrapped error should not be nil")
		testutil.AssertTrue(t, Is(wrapped, baseErr), "should be able to unwrap to base error")
		testutil.AssertEqual(t, wrapped.Error(), "additional context: base error", "error message should include context")
	})

	t.Run("returns nil when wrapping nil", func(t *testing.T) {
		testutil.AssertTrue(t, Wrap(nil, "context") == nil, "wrapping nil should return nil")
	})

	t.Run("multiple wraps preserve chain", func(t *testing.T) {
		baseErr := New("base")
		wrapped := Wrap(Wrap(baseErr, "layer 1"), "layer 2")

		testutil.AssertTrue(t, Is(wrapped, baseErr), "should unwrap to base error")
		testutil.AssertEqual(t, wrapped.Error(), "layer 2: layer 1: base", "should show full chain")
	})
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrInvalidInput, "wordlist %s line %d", "tlds.txt", 3)

	testutil.AssertTrue(t, IsInvalidInput(wrapped), "should unwrap to sentinel")
	testutil.AssertEqual(t, wrapped.Error(), "wordlist tlds.txt line 3: invalid input", "formatted context")
	testutil.AssertTrue(t, Wrapf(nil, "x %d", 1) == nil, "wrapping nil should return nil")
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyTransport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want TransportClass
	}{
		{"nil", nil, ClassNone},
		{"sentinel timeout", Wrap(ErrTimeout, "probe"), ClassTimeout},
		{"context deadline", context.DeadlineExceeded, ClassTimeout},
		{"client deadline wrapped in url.Error", &url.Error{Op: "Get", URL: "http://a.b", Err: context.DeadlineExceeded}, ClassTimeout},
		{"net.Error timeout", &url.Error{Op: "Get", URL: "http://a.b", Err: timeoutErr{}}, ClassTimeout},
		{"dns failure", &url.Error{Op: "Get", URL: "http://a.b", Err: &net.OpError{Op: "dial", Err: &net.DNSError{Err: "no such host", Name: "a.b"}}}, ClassConnection},
		{"dns timeout is a timeout", &net.DNSError{Err: "timeout", Name: "a.b", IsTimeout: true}, ClassTimeout},
		{"connection refused", &url.Error{Op: "Get", URL: "http://a.b", Err: &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}}, ClassConnection},
		{"connection reset on read", &net.OpError{Op: "read", Err: os.NewSyscallError("read", syscall.ECONNRESET)}, ClassConnection},
		{"sentinel connection", ErrConnectionFailed, ClassConnection},
		{"unexpected eof", &url.Error{Op: "Get", URL: "http://a.b", Err: io.ErrUnexpectedEOF}, ClassProtocol},
		{"opaque transport error", &url.Error{Op: "Get", URL: "https://a.b", Err: New("http: server gave HTTP response to HTTPS client")}, ClassProtocol},
		{"sentinel protocol", Wrap(ErrProtocol, "bad frame"), ClassProtocol},
		{"not a transport error", New("something else"), ClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyTransport(tt.err)
			testutil.AssertEqual(t, got, tt.want, fmt.Sprintf("ClassifyTransport(%v)", tt.err))
		})
	}
}

func TestIsHelpers(t *testing.T) {
	testutil.AssertTrue(t, IsTimeout(context.DeadlineExceeded), "deadline is timeout")
	testutil.AssertFalse(t, IsTimeout(ErrConnectionFailed), "connection failure is not timeout")
	testutil.AssertTrue(t, IsConnectionFailed(Wrap(ErrConnectionFailed, "dial")), "wrapped connection failure")
	testutil.AssertFalse(t, IsInvalidInput(ErrTimeout), "timeout is not invalid input")
}

func TestTransportClass_String(t *testing.T) {
	testutil.AssertEqual(t, ClassTimeout.String(), "timeout", "timeout name")
	testutil.AssertEqual(t, ClassConnection.String(), "connection", "connection name")
	testutil.AssertEqual(t, ClassProtocol.String(), "protocol", "protocol name")
	testutil.AssertEqual(t, TransportClass(99).String(), "unknown", "unknown name")
}

func TestJoin(t *testing.T) {
	joined := Join(ErrTimeout, nil, ErrInvalidInput)

	testutil.AssertTrue(t, Is(joined, ErrTimeout), "joined contains timeout")
	testutil.AssertTrue(t, Is(joined, ErrInvalidInput), "joined contains invalid input")
	testutil.AssertTrue(t, Join(nil, nil) == nil, "join of nils is nil")
}

func ExampleWrap() {
	err := Wrap(ErrConnectionFailed, "probe http://www.example.com")
	fmt.Println(err)
	// Output: probe http://www.example.com: connection failed
}
