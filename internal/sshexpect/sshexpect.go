// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sshexpect drives interactive login flows over SSH. It exists for
// the prompts a command API cannot reach, such as the forced password
// change on a freshly provisioned device.
package sshexpect

import (
	"fmt"
	"io"
	"regexp"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
)

// expecter matches patterns against a continuously pumped output stream.
type expecter struct {
	in io.Writer

	mu  sync.Mutex
	buf []byte
	err error
}

func newExpecter(in io.Writer, outs ...io.Reader) *expecter {
	e := &expecter{in: in}
	for _, out := range outs {
		go e.pump(out)
	}
	return e
}

func (e *expecter) pump(r io.Reader) {
	chunk := make([]byte, 4096)
	for {
		n, err := r.Read(chunk)
		e.mu.Lock()
		e.buf = append(e.buf, chunk[:n]...)
		if err != nil {
			if e.err == nil {
				e.err = err
			}
			e.mu.Unlock()
			return
		}
		e.mu.Unlock()
	}
}

// Expect blocks until the unconsumed output matches re, then consumes the
// output through the end of the match and returns it. It returns an error
// if the stream ends or timeout elapses without a match.
func (e *expecter) Expect(re *regexp.Regexp, timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)
	for {
		e.mu.Lock()
		if loc := re.FindIndex(e.buf); loc != nil {
			matched := string(e.buf[:loc[1]])
			e.buf = e.buf[loc[1]:]
			e.mu.Unlock()
			return matched, nil
		}
		err, pending := e.err, string(e.buf)
		e.mu.Unlock()
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("waiting for %v: %w (output so far: %q)", re, err, pending)
		}
		if err == io.EOF {
			return "", fmt.Errorf("session closed while waiting for %v (output so far: %q)", re, pending)
		}
		if time.Now().After(deadline) {
			return "", fmt.Errorf("timed out waiting for %v (output so far: %q)", re, pending)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// Sendline writes line followed by a newline to the remote shell.
func (e *expecter) Sendline(line string) error {
	_, err := io.WriteString(e.in, line+"\n")
	return err
}

// Session is an interactive SSH shell with expect-style matching on its
// output.
type Session struct {
	*expecter
	client *ssh.Client
	sess   *ssh.Session
}

// Dial opens an interactive shell on addr as user. Both password and
// keyboard-interactive authentication answer with password, since PAM
// setups differ on which one carries the login conversation.
func Dial(addr, user, password string, timeout time.Duration) (*Session, error) {
	kbd := func(name, instruction string, questions []string, echos []bool) ([]string, error) {
		answers := make([]string, len(questions))
		for i := range questions {
			answers[i] = password
		}
		return answers, nil
	}
	cfg := &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
			ssh.KeyboardInteractive(kbd),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}
	client, err := ssh.Dial("tcp", addr, cfg)
	if err != nil {
		return nil, fmt.Errorf("dialing %s as %s: %w", addr, user, err)
	}
	sess, err := client.NewSession()
	if err != nil {
		client.Close()
		return nil, err
	}
	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 115200,
		ssh.TTY_OP_OSPEED: 115200,
	}
	if err := sess.RequestPty("xterm", 40, 120, modes); err != nil {
		sess.Close()
		client.Close()
		return nil, fmt.Errorf("requesting pty: %w", err)
	}
	in, err := sess.StdinPipe()
	if err != nil {
		sess.Close()
		client.Close()
		return nil, err
	}
	out, err := sess.StdoutPipe()
	if err != nil {
		sess.Close()
		client.Close()
		return nil, err
	}
	errOut, err := sess.StderrPipe()
	if err != nil {
		sess.Close()
		client.Close()
		return nil, err
	}
	if err := sess.Shell(); err != nil {
		sess.Close()
		client.Close()
		return nil, fmt.Errorf("starting shell: %w", err)
	}
	return &Session{
		expecter: newExpecter(in, out, errOut),
		client:   client,
		sess:     sess,
	}, nil
}

// Close tears down the shell and the underlying connection.
func (s *Session) Close() error {
	s.sess.Close()
	return s.client.Close()
}
