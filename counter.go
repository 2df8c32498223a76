// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

package fifo

import "code.hybscloud.com/atomix"

// counter is a shared position counter with explicit memory ordering.
type counter = atomix.Uint64
