package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// sidekiqJob is the payload Sidekiq pushes onto queue:<name>.
type sidekiqJob struct {
	Class string            `json:"class"`
	Args  []json.RawMessage `json:"args"`
	Queue string            `json:"queue"`
}

// queueConn speaks just enough RESP for AUTH, SELECT and BRPOP.
type queueConn struct {
	rw *bufio.ReadWriter
}

func newQueueConn(rw io.ReadWriter) *queueConn {
	return &queueConn{rw: bufio.NewReadWriter(bufio.NewReader(rw), bufio.NewWriter(rw))}
}

func (c *queueConn) send(cmd string, args ...string) error {
	if _, err := fmt.Fprintf(c.rw, "*%d\r\n", 1+len(args)); err != nil {
		return err
	}
	for _, s := range append([]string{cmd}, args...) {
		if _, err := fmt.Fprintf(c.rw, "$%d\r\n%s\r\n", len(s), s); err != nil {
			return err
		}
	}
	return c.rw.Flush()
}

func (c *queueConn) readLine() (string, error) {
	b, err := c.rw.ReadString('\n')
	if err != nil {
		return "", err
	}
	if len(b) >= 2 && b[len(b)-2] == '\r' {
		return b[:len(b)-2], nil
	}
	return b[:len(b)-1], nil
}

// expectOK reads a simple-string reply and fails on anything else.
func (c *queueConn) expectOK() error {
	line, err := c.readLine()
	if err != nil {
		return err
	}
	if len(line) > 0 && line[0] == '+' {
		return nil
	}
	return fmt.Errorf("redis not OK: %s", line)
}

// readBulk reads one bulk string. A nil bulk reads as "".
func (c *queueConn) readBulk() (string, error) {
	line, err := c.readLine()
	if err != nil {
		return "", err
	}
	if len(line) == 0 || line[0] != '$' {
		return "", fmt.Errorf("expected bulk string, got %q", line)
	}
	n, err := strconv.Atoi(line[1:])
	if err != nil {
		return "", fmt.Errorf("bad bulk length %q", line)
	}
	if n < 0 {
		return "", nil
	}
	buf := make([]byte, n+2)
	if _, err := io.ReadFull(c.rw, buf); err != nil {
		return "", io.EOF
	}
	return string(buf[:n]), nil
}

// pop reads a BRPOP reply. A timeout yields empty key and payload.
func (c *queueConn) pop() (key, payload string, err error) {
	line, err := c.readLine()
	if err != nil {
		return "", "", err
	}
	if len(line) == 0 {
		return "", "", errors.New("empty reply")
	}
	switch line[0] {
	case '*':
		n, err := strconv.Atoi(line[1:])
		if err != nil {
			return "", "", fmt.Errorf("bad array length %q", line)
		}
		if n <= 0 {
			return "", "", nil
		}
		if n != 2 {
			return "", "", fmt.Errorf("unexpected BRPOP reply with %d elements", n)
		}
		if key, err = c.readBulk(); err != nil {
			return "", "", err
		}
		if payload, err = c.readBulk(); err != nil {
			return "", "", err
		}
		return key, payload, nil
	case '$':
		if line == "$-1" {
			return "", "", nil
		}
		return "", "", fmt.Errorf("unexpected bulk reply: %s", line)
	case '-':
		return "", "", fmt.Errorf("redis error: %s", line[1:])
	default:
		return "", "", fmt.Errorf("unexpected reply: %s", line)
	}
}
