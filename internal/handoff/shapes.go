// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handoff

import "unsafe"

// Msg8 is an 8-byte element.
type Msg8 struct {
	Seq uint64
}

// Msg64 is a 64-byte element, about the size of a controller state
// snapshot.
type Msg64 struct {
	Seq     uint64
	Payload [56]byte
}

// Msg256 is a 256-byte element.
type Msg256 struct {
	Seq     uint64
	Payload [248]byte
}

// Msg2K is a 2 KiB element.
type Msg2K struct {
	Seq     uint64
	Payload [2040]byte
}

// Shape is an element type the hand-off runner can be driven with.
type Shape struct {
	Name string
	Size uintptr
	Run  func(cfg Config) (Result, error)
}

// Shapes covers every block sizing tier, smallest element first.
var Shapes = []Shape{
	{
		Name: "8B",
		Size: unsafe.Sizeof(Msg8{}),
		Run: func(cfg Config) (Result, error) {
			return Run(cfg,
				func(i uint64) Msg8 { return Msg8{Seq: i} },
				func(m *Msg8) uint64 { return m.Seq })
		},
	},
	{
		Name: "64B",
		Size: unsafe.Sizeof(Msg64{}),
		Run: func(cfg Config) (Result, error) {
			return Run(cfg,
				func(i uint64) Msg64 { return Msg64{Seq: i} },
				func(m *Msg64) uint64 { return m.Seq })
		},
	},
	{
		Name: "256B",
		Size: unsafe.Sizeof(Msg256{}),
		Run: func(cfg Config) (Result, error) {
			return Run(cfg,
				func(i uint64) Msg256 { return Msg256{Seq: i} },
				func(m *Msg256) uint64 { return m.Seq })
		},
	},
	{
		Name: "2KiB",
		Size: unsafe.Sizeof(Msg2K{}),
		Run: func(cfg Config) (Result, error) {
			return Run(cfg,
				func(i uint64) Msg2K { return Msg2K{Seq: i} },
				func(m *Msg2K) uint64 { return m.Seq })
		},
	},
}

// Lookup returns the shape with the given name.
func Lookup(name string) (Shape, bool) {
	for _, s := range Shapes {
		if s.Name == name {
			return s, true
		}
	}
	return Shape{}, false
}
