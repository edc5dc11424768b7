// SPDX-License-Identifier: GPL-2.0-or-later

// Command clipdemo runs box traces against a small built-in world, one
// per "trace" console command, and prints each result, using the same
// cvar/cmd/conlog plumbing the engine itself is driven by.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"clipmap/cm"
	"clipmap/cmd"
	"clipmap/conlog"
	"clipmap/cvar"
	"clipmap/math/vec"
)

var (
	cmNoCurves         = cvar.MustRegister("cm_noCurves", "0", cvar.NONE)
	cmForceTriangles   = cvar.MustRegister("cm_forceTriangles", "0", cvar.NONE)
	cmPerPolyCollision = cvar.MustRegister("cm_perPolyCollision", "0", cvar.ARCHIVE)
)

func init() {
	conlog.SetPrintf(func(format string, v ...interface{}) { fmt.Printf(format, v...) })
	conlog.SetSavePrintf(func(format string, v ...interface{}) { fmt.Printf(format, v...) })
}

// demoWorld returns a world with a single solid unit cube [0,1]^3, enough
// geometry to exercise BoxTrace end to end.
func demoWorld() (*cm.World, error) {
	mins := vec.Vec3{X: 0, Y: 0, Z: 0}
	maxs := vec.Vec3{X: 1, Y: 1, Z: 1}
	planes := [6]cm.Plane{
		cm.NewPlane(vec.Vec3{X: -1}, -mins.X),
		cm.NewPlane(vec.Vec3{X: 1}, maxs.X),
		cm.NewPlane(vec.Vec3{Y: -1}, -mins.Y),
		cm.NewPlane(vec.Vec3{Y: 1}, maxs.Y),
		cm.NewPlane(vec.Vec3{Z: -1}, -mins.Z),
		cm.NewPlane(vec.Vec3{Z: 1}, maxs.Z),
	}
	sides := make([]cm.BrushSide, len(planes))
	for i := range planes {
		sides[i] = cm.BrushSide{Plane: &planes[i]}
	}
	brush := cm.Brush{Sides: sides, Bounds: [2]vec.Vec3{mins, maxs}, Contents: cm.ContentsSolid}

	rootPlane := cm.NewPlane(vec.Vec3{X: 1}, 0)
	node := cm.Node{Plane: &rootPlane, Children: [2]int32{-1, -1}}
	leaf := cm.Leaf{Brushes: []int32{0}}

	return cm.NewWorld([]cm.Node{node}, []cm.Leaf{leaf}, []cm.Brush{brush}, nil, nil, cmPerPolyCollision.Bool())
}

// runTrace executes one "trace <sx> <sy> <sz> <ex> <ey> <ez>" console
// command against w and reports the result through conlog, tagging the
// line with a per-invocation id so concurrent log consumers can line
// requests up with responses.
func runTrace(w *cm.World, a cmd.Arguments, player, source int) error {
	args := a.Args()[1:]
	if len(args) != 6 {
		conlog.Printf("trace <sx> <sy> <sz> <ex> <ey> <ez>\n")
		return nil
	}

	f := make([]float32, 6)
	for i, arg := range args {
		f[i] = arg.Float32()
	}
	start := vec.Vec3{X: f[0], Y: f[1], Z: f[2]}
	end := vec.Vec3{X: f[3], Y: f[4], Z: f[5]}

	w.NoCurves = cmNoCurves.Bool()
	w.ForceTriangles = cmForceTriangles.Bool()
	w.PerPolyCollision = cmPerPolyCollision.Bool()

	id := uuid.New()
	mins := vec.Vec3{X: -0.1, Y: -0.1, Z: -0.1}
	maxs := vec.Vec3{X: 0.1, Y: 0.1, Z: 0.1}
	r := cm.BoxTrace(w, start, end, mins, maxs, cm.WorldModelHandle, cm.ContentsSolid, 0)

	if msg := cm.CheckTraceConsistency(start, end, cm.ContentsSolid, 0, r); msg != "" {
		return errors.Errorf("trace %s produced an inconsistent result: %s", id, msg)
	}

	conlog.Printf("[%s] fraction=%v endpos=%v startsolid=%v allsolid=%v\n",
		id, r.Fraction, r.EndPos, r.StartSolid, r.AllSolid)
	return nil
}

func main() {
	flag.Parse()

	w, err := demoWorld()
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "building demo world"))
		os.Exit(1)
	}

	cmd.Must(cmd.AddCommand("trace", func(a cmd.Arguments, player, source int) error {
		return runTrace(w, a, player, source)
	}))

	if flag.NArg() > 0 {
		line := strings.Join(flag.Args(), " ")
		if err := execLine(line); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := execLine(line); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

func execLine(line string) error {
	a := cmd.Parse(line)
	handled, err := cmd.Execute(a, 0, 0)
	if err != nil {
		return err
	}
	if !handled {
		if handled, err := cvar.Execute(a); err != nil {
			return err
		} else if !handled {
			conlog.Printf("unknown command: %s\n", a.Full())
		}
	}
	return nil
}
