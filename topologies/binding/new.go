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

// Package binding implements a static Ondatra binding for a SONiC DUT and
// an OTG traffic generator, described by a YAML binding file.
package binding

import (
	"errors"
	"flag"
	"fmt"

	"github.com/golang/glog"
	"github.com/openconfig/ondatra/binding"
)

var bindingFile = flag.String("binding", "", "static binding configuration file")

// New creates a static binding from the file given by the -binding flag.
// It should be passed to ondatra.RunTests in TestMain.
func New() (binding.Binding, error) {
	if *bindingFile == "" {
		return nil, errors.New("-binding must be provided")
	}
	glog.Infof("Loading binding file %s", *bindingFile)
	cfg, err := loadConfig(*bindingFile)
	if err != nil {
		return nil, err
	}
	return &staticBind{r: resolver{cfg}}, nil
}

// DUTSSH returns the resolved SSH options of the DUT named in the -binding
// file, for tests that must hold their own interactive session instead of
// the CLI API.
func DUTSSH(dutName string) (*Options, error) {
	cfg, err := loadConfig(*bindingFile)
	if err != nil {
		return nil, err
	}
	r := resolver{cfg}
	for _, dev := range cfg.DUTs {
		if dev.Name == dutName || dev.ID == dutName {
			d := r.ssh(dev)
			return d.Options, nil
		}
	}
	return nil, fmt.Errorf("DUT %q is missing from the binding", dutName)
}
