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

package binding

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"flag"
	"fmt"
	"os"
	"time"

	grpc_retry "github.com/grpc-ecosystem/go-grpc-middleware/retry"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	yaml "gopkg.in/yaml.v2"
)

// IANA assigns 9339 for gNxI. The OTG controller listens on 40051 for
// configuration and 50051 for telemetry by convention.
var (
	gnmiPort    = flag.Int("gnmi_port", 9339, "default gNMI port")
	gnoiPort    = flag.Int("gnoi_port", 9339, "default gNOI port")
	sshPort     = flag.Int("ssh_port", 22, "default SSH port")
	ateGnmiPort = flag.Int("ate_gnmi_port", 50051, "default ATE gNMI port")
	ateOtgPort  = flag.Int("ate_grpc_port", 40051, "default ATE gRPC port for running OTG test")
)

// Options are the per-connection settings of the binding file. Device and
// service options are layered over the top-level ones; later non-zero
// fields win.
type Options struct {
	Target          string `yaml:"target"`
	Insecure        bool   `yaml:"insecure"`
	SkipVerify      bool   `yaml:"skip_verify"`
	MutualTLS       bool   `yaml:"mutual_tls"`
	CertFile        string `yaml:"cert_file"`
	KeyFile         string `yaml:"key_file"`
	TrustBundleFile string `yaml:"trust_bundle_file"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	Timeout         int    `yaml:"timeout"` // seconds
}

// Port maps a testbed port ID to the physical port name on the device.
type Port struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Device describes one DUT or ATE of the binding file.
type Device struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Vendor          string   `yaml:"vendor"`
	HardwareModel   string   `yaml:"hardware_model"`
	SoftwareVersion string   `yaml:"software_version"`
	Ports           []*Port  `yaml:"ports"`
	Options         *Options `yaml:"options"`
	SSH             *Options `yaml:"ssh"`
	GNMI            *Options `yaml:"gnmi"`
	GNOI            *Options `yaml:"gnoi"`
	OTG             *Options `yaml:"otg"`
}

// Config is the top level of the binding file.
type Config struct {
	Options *Options  `yaml:"options"`
	DUTs    []*Device `yaml:"duts"`
	ATEs    []*Device `yaml:"ates"`
}

func parseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse binding file: %w", err)
	}
	for _, d := range append(append([]*Device{}, cfg.DUTs...), cfg.ATEs...) {
		if d.ID == "" || d.Name == "" {
			return nil, fmt.Errorf("every device needs both an id and a name, got id=%q name=%q", d.ID, d.Name)
		}
	}
	return cfg, nil
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read binding file: %w", err)
	}
	return parseConfig(data)
}

// merge layers one or more option sets, later non-zero fields winning.
func merge(opts ...*Options) dialer {
	result := &Options{}
	for _, o := range opts {
		if o == nil {
			continue
		}
		if o.Target != "" {
			result.Target = o.Target
		}
		if o.Insecure {
			result.Insecure = true
		}
		if o.SkipVerify {
			result.SkipVerify = true
		}
		if o.MutualTLS {
			result.MutualTLS = true
		}
		if o.CertFile != "" {
			result.CertFile = o.CertFile
		}
		if o.KeyFile != "" {
			result.KeyFile = o.KeyFile
		}
		if o.TrustBundleFile != "" {
			result.TrustBundleFile = o.TrustBundleFile
		}
		if o.Username != "" {
			result.Username = o.Username
		}
		if o.Password != "" {
			result.Password = o.Password
		}
		if o.Timeout != 0 {
			result.Timeout = o.Timeout
		}
	}
	return dialer{result}
}

// creds implements the grpc.PerRPCCredentials interface, to be used
// as a grpc.DialOption in dialGRPC.
type creds struct {
	username, password string
	secure             bool
}

func (c *creds) GetRequestMetadata(ctx context.Context, uri ...string) (map[string]string, error) {
	return map[string]string{
		"username": c.username,
		"password": c.password,
	}, nil
}

func (c *creds) RequireTransportSecurity() bool {
	return c.secure
}

var _ = grpc.PerRPCCredentials(&creds{})

// dialer wraps *Options and implements dialers for the protocols we use.
type dialer struct {
	*Options
}

// mutualTLSCredentials loads the client keypair and trust bundle named in
// the binding options.
func (d dialer) mutualTLSCredentials() (credentials.TransportCredentials, error) {
	cert, err := tls.LoadX509KeyPair(d.CertFile, d.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("unable to load client certificate: %w", err)
	}
	bundle, err := os.ReadFile(d.TrustBundleFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read trust bundle: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(bundle) {
		return nil, fmt.Errorf("no certificates in trust bundle %s", d.TrustBundleFile)
	}
	return credentials.NewTLS(&tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
	}), nil
}

// dialGRPC dials a gRPC connection using the binding options.
func (d dialer) dialGRPC(ctx context.Context, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	switch {
	case d.Insecure:
		tc := insecure.NewCredentials()
		opts = append(opts, grpc.WithTransportCredentials(tc))
	case d.SkipVerify:
		tc := credentials.NewTLS(&tls.Config{InsecureSkipVerify: true})
		opts = append(opts, grpc.WithTransportCredentials(tc))
	case d.MutualTLS:
		tc, err := d.mutualTLSCredentials()
		if err != nil {
			return nil, err
		}
		opts = append(opts, grpc.WithTransportCredentials(tc))
	}
	if d.Username != "" {
		c := &creds{d.Username, d.Password, !d.Insecure}
		opts = append(opts, grpc.WithPerRPCCredentials(c))
	}
	if d.Timeout == 0 {
		return grpc.DialContext(ctx, d.Target, opts...)
	}
	retryOpt := grpc_retry.WithPerRetryTimeout(time.Duration(d.Timeout) * time.Second)
	opts = append(opts,
		grpc.WithStreamInterceptor(grpc_retry.StreamClientInterceptor(retryOpt)),
		grpc.WithUnaryInterceptor(grpc_retry.UnaryClientInterceptor(retryOpt)),
	)
	ctx, cancelFunc := context.WithTimeout(ctx, time.Duration(d.Timeout)*time.Second)
	defer cancelFunc()
	return grpc.DialContext(ctx, d.Target, opts...)
}

var knownHostsFiles = []string{
	"$HOME/.ssh/known_hosts",
	"/etc/ssh/ssh_known_hosts",
}

// knownHostsCallback checks the user and system SSH known_hosts.
func knownHostsCallback() (ssh.HostKeyCallback, error) {
	var files []string
	for _, file := range knownHostsFiles {
		file = os.ExpandEnv(file)
		if _, err := os.Stat(file); err == nil {
			files = append(files, file)
		}
	}
	return knownhosts.New(files...)
}

// dialSSH dials an SSH client using the binding options.
func (d dialer) dialSSH() (*ssh.Client, error) {
	c := &ssh.ClientConfig{
		User: d.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(d.Password),
			ssh.KeyboardInteractive(sshInteractive(d.Password)),
		},
	}
	if d.SkipVerify {
		c.HostKeyCallback = ssh.InsecureIgnoreHostKey()
	} else {
		cb, err := knownHostsCallback()
		if err != nil {
			return nil, err
		}
		c.HostKeyCallback = cb
	}
	return ssh.Dial("tcp", d.Target, c)
}

// For every question asked in an interactive login ssh session, set the
// answer to user password.
func sshInteractive(password string) ssh.KeyboardInteractiveChallenge {
	return func(_, _ string, questions []string, _ []bool) ([]string, error) {
		answers := make([]string, len(questions))
		for n := range questions {
			answers[n] = password
		}
		return answers, nil
	}
}

// resolver returns the dialer for specific devices and protocols.
type resolver struct {
	*Config
}

func (r *resolver) dutByID(dutID string) *Device {
	for _, dut := range r.DUTs {
		if dut.ID == dutID {
			return dut
		}
	}
	return nil
}

func (r *resolver) ateByID(ateID string) *Device {
	for _, ate := range r.ATEs {
		if ate.ID == ateID {
			return ate
		}
	}
	return nil
}

// deviceDialer reconstructs the dialer for a given device and protocol.
func (r *resolver) deviceDialer(dev *Device, port int, svcOpts *Options) dialer {
	targetOptions := &Options{
		Target: fmt.Sprintf("%s:%d", dev.Name, port),
	}
	return merge(targetOptions, r.Options, dev.Options, svcOpts)
}

func (r *resolver) gnmi(dut *Device) dialer {
	return r.deviceDialer(dut, *gnmiPort, dut.GNMI)
}

func (r *resolver) gnoi(dut *Device) dialer {
	return r.deviceDialer(dut, *gnoiPort, dut.GNOI)
}

func (r *resolver) ssh(dut *Device) dialer {
	return r.deviceDialer(dut, *sshPort, dut.SSH)
}

func (r *resolver) ateGNMI(ate *Device) dialer {
	return r.deviceDialer(ate, *ateGnmiPort, ate.GNMI)
}

func (r *resolver) ateOTG(ate *Device) dialer {
	return r.deviceDialer(ate, *ateOtgPort, ate.OTG)
}
