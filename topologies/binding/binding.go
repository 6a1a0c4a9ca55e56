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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/open-traffic-generator/snappi/gosnappi"
	gpb "github.com/openconfig/gnmi/proto/gnmi"
	"github.com/openconfig/gnoigo"
	"github.com/openconfig/ondatra/binding"
	opb "github.com/openconfig/ondatra/proto"
	"google.golang.org/grpc"
)

var (
	// To be stubbed out by unit tests.
	gosnappiNewAPIFn = gosnappi.NewApi
)

// staticBind implements the binding.Binding interface by creating a
// static reservation from a binding configuration file and the
// testbed topology.
type staticBind struct {
	binding.Binding
	r    resolver
	resv *binding.Reservation
}

var _ binding.Binding = (*staticBind)(nil)

type staticDUT struct {
	*binding.AbstractDUT
	r   resolver
	dev *Device
}

type staticATE struct {
	*binding.AbstractATE
	r   resolver
	dev *Device
}

const resvID = "STATIC"

func (b *staticBind) Reserve(ctx context.Context, tb *opb.Testbed, runTime, waitTime time.Duration, partial map[string]string) (*binding.Reservation, error) {
	_ = runTime
	_ = waitTime
	_ = partial
	if b.resv != nil {
		return nil, fmt.Errorf("only one reservation is allowed")
	}
	resv, err := reservation(tb, b.r)
	if err != nil {
		return nil, err
	}
	resv.ID = resvID
	b.resv = resv
	return resv, nil
}

func (b *staticBind) Release(ctx context.Context) error {
	if b.resv == nil {
		return errors.New("no reservation")
	}
	b.resv = nil
	return nil
}

func (b *staticBind) FetchReservation(_ context.Context, id string) (*binding.Reservation, error) {
	_ = id
	return nil, errors.New("static binding does not support fetching an existing reservation")
}

// reservation pairs the devices of the testbed topology with the devices of
// the binding file by ID.
func reservation(tb *opb.Testbed, r resolver) (*binding.Reservation, error) {
	resv := &binding.Reservation{
		DUTs: make(map[string]binding.DUT),
		ATEs: make(map[string]binding.ATE),
	}
	var errs []error
	for _, tdut := range tb.GetDuts() {
		bdut := r.dutByID(tdut.GetId())
		if bdut == nil {
			errs = append(errs, fmt.Errorf("missing binding for DUT %q", tdut.GetId()))
			continue
		}
		dims, err := dims(tdut, bdut)
		if err != nil {
			errs = append(errs, fmt.Errorf("binding DUT %q: %w", tdut.GetId(), err))
			continue
		}
		resv.DUTs[tdut.GetId()] = &staticDUT{
			AbstractDUT: &binding.AbstractDUT{Dims: dims},
			r:           r,
			dev:         bdut,
		}
	}
	for _, tate := range tb.GetAtes() {
		bate := r.ateByID(tate.GetId())
		if bate == nil {
			errs = append(errs, fmt.Errorf("missing binding for ATE %q", tate.GetId()))
			continue
		}
		dims, err := dims(tate, bate)
		if err != nil {
			errs = append(errs, fmt.Errorf("binding ATE %q: %w", tate.GetId(), err))
			continue
		}
		resv.ATEs[tate.GetId()] = &staticATE{
			AbstractATE: &binding.AbstractATE{Dims: dims},
			r:           r,
			dev:         bate,
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return resv, nil
}

func dims(td *opb.Device, bd *Device) (*binding.Dims, error) {
	ports, err := bindPorts(td.GetPorts(), bd.Ports)
	if err != nil {
		return nil, err
	}
	return &binding.Dims{
		Name:            bd.Name,
		Vendor:          vendor(bd.Vendor),
		HardwareModel:   bd.HardwareModel,
		SoftwareVersion: bd.SoftwareVersion,
		Ports:           ports,
	}, nil
}

func vendor(name string) opb.Device_Vendor {
	if v, ok := opb.Device_Vendor_value[strings.ToUpper(name)]; ok {
		return opb.Device_Vendor(v)
	}
	return opb.Device_OPENCONFIG
}

func bindPorts(tports []*opb.Port, bports []*Port) (map[string]*binding.Port, error) {
	byID := make(map[string]string)
	for _, p := range bports {
		byID[p.ID] = p.Name
	}
	ports := make(map[string]*binding.Port)
	for _, tp := range tports {
		name, ok := byID[tp.GetId()]
		if !ok {
			return nil, fmt.Errorf("testbed port %q has no binding", tp.GetId())
		}
		ports[tp.GetId()] = &binding.Port{Name: name}
	}
	return ports, nil
}

func (d *staticDUT) DialGNMI(ctx context.Context, opts ...grpc.DialOption) (gpb.GNMIClient, error) {
	conn, err := d.r.gnmi(d.dev).dialGRPC(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return gpb.NewGNMIClient(conn), nil
}

func (d *staticDUT) DialGNOI(ctx context.Context, opts ...grpc.DialOption) (gnoigo.Clients, error) {
	conn, err := d.r.gnoi(d.dev).dialGRPC(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return gnoigo.NewClients(conn), nil
}

func (d *staticDUT) DialCLI(context.Context) (binding.CLIClient, error) {
	sc, err := d.r.ssh(d.dev).dialSSH()
	if err != nil {
		return nil, err
	}
	return newCLI(sc)
}

func (a *staticATE) DialGNMI(ctx context.Context, opts ...grpc.DialOption) (gpb.GNMIClient, error) {
	conn, err := a.r.ateGNMI(a.dev).dialGRPC(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return gpb.NewGNMIClient(conn), nil
}

func (a *staticATE) DialOTG(ctx context.Context, opts ...grpc.DialOption) (gosnappi.Api, error) {
	conn, err := a.r.ateOTG(a.dev).dialGRPC(ctx, opts...)
	if err != nil {
		return nil, err
	}
	api := gosnappiNewAPIFn()
	api.NewGrpcTransport().SetClientConnection(conn).SetRequestTimeout(30 * time.Second)
	return api, nil
}
