package registry

import (
	"bufio"
	"context"
	"io"
	"strings"

	"go.trai.ch/refgraph/internal/core/ports"
	"go.trai.ch/zerr"
)

// Replies of the membership line protocol. A request is one absolute path per line;
// every request gets exactly one reply line.
const (
	replyMember    = "1"
	replyNotMember = "0"
	replyError     = "error "
)

var errEmptyPath = zerr.New("empty path")

// Serve answers membership requests read from r until r is exhausted or ctx is done.
func Serve(ctx context.Context, r io.Reader, w io.Writer, query ports.RegistryQuery) error {
	scanner := bufio.NewScanner(r)
	out := bufio.NewWriter(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := strings.TrimSuffix(scanner.Text(), "\r")

		reply := replyNotMember
		var member bool
		var err error
		if path == "" {
			err = errEmptyPath
		} else {
			member, err = query.IsProvidedByRegistry(path)
		}
		switch {
		case err != nil:
			reply = replyError + strings.ReplaceAll(err.Error(), "\n", " ")
		case member:
			reply = replyMember
		}

		if _, err := out.WriteString(reply + "\n"); err != nil {
			return zerr.Wrap(err, "failed to write registry reply")
		}
		if err := out.Flush(); err != nil {
			return zerr.Wrap(err, "failed to write registry reply")
		}
	}

	if err := scanner.Err(); err != nil {
		return zerr.Wrap(err, "failed to read registry request")
	}
	return nil
}
