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

// Package args defines arguments that depend on the device inventory and
// test artifacts rather than on the testbed topology. Having them at the
// project level lets the whole suite run without defining them per test.
package args

import (
	"flag"
	"strings"
)

// Global test flags.
var (
	DUTAS           = flag.Uint("arg_dut_as", 65100, "Autonomous system number configured on the DUT for the emulated BGP sessions.")
	TargetImageList = flag.String("arg_target_image_list", "", "Comma-separated list of image paths for install tests. The secure-boot test expects exactly one entry: the non-secure image.")
	RestoreToImage  = flag.String("arg_restore_to_image", "", "Path of the image to provision onto the DUT before first-boot tests. The password-expiry test skips when unset.")
	SNMPCommunity   = flag.String("arg_snmp_community", "public", "SNMP v2c read community configured on the DUT.")
	DefaultUser     = flag.String("arg_default_user", "admin", "Factory-default login user on the DUT.")
	DefaultPassword = flag.String("arg_default_password", "YourPaSsWoRd", "Factory-default password for the default user.")
	NewPassword     = flag.String("arg_new_password", "N3w_P@ssw0rd!", "Replacement password used by the password-expiry test.")
	InstallTimeout  = flag.Duration("arg_install_timeout", 0, "Time allowed for an image install to finish. 0 uses the test default.")
	SkipProvision   = flag.Bool("arg_skip_provision", false, "Skip the provisioning step of first-boot tests and assume the DUT is freshly manufactured.")
)

// ImageList splits -arg_target_image_list into its entries, dropping empty
// elements.
func ImageList() []string {
	var images []string
	for _, p := range strings.Split(*TargetImageList, ",") {
		if p = strings.TrimSpace(p); p != "" {
			images = append(images, p)
		}
	}
	return images
}
