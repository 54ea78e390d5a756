// Package obj parses the Wavefront-style text meshes used for the car and
// wheel models.
//
// Supported records:
//
//	v x y z [w]   position (w defaults to 1)
//	vt u v [w]    texture coordinate (w ignored)
//	vn x y z      normal
//	f a b c       triangle; each corner is p, p/t, p//n or p/t/n
//
// Indices are 1-based in the file; negative indices count back from the end
// of the pool parsed so far. Every other record type is ignored.
package obj

import (
	"bufio"
	"fmt"
	"io"
	stdmath "math"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/racer/pkg/math"
)

// pools holds the unique attributes referenced by face records.
type pools struct {
	positions []math.Vec4
	texCoords []math.Vec2
	normals   []math.Vec3
}

// Parse parses mesh text.
func Parse(text string) (*Mesh, error) {
	return ParseReader(strings.NewReader(text))
}

// ParseFile parses a mesh file from disk.
func ParseFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mesh file: %w", err)
	}
	defer f.Close()

	mesh, err := ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mesh, nil
}

// ParseReader parses mesh text from r. Parsing stops at the first malformed
// record; the error is a *FormatError wrapping one of the package sentinels.
func ParseReader(r io.Reader) (*Mesh, error) {
	var p pools
	mesh := &Mesh{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			err = p.addPosition(fields[1:])
		case "vt":
			err = p.addTexCoord(fields[1:])
		case "vn":
			err = p.addNormal(fields[1:])
		case "f":
			err = p.emitFace(mesh, fields[1:])
		}
		if err != nil {
			return nil, &FormatError{Line: line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading mesh: %w", err)
	}

	return mesh, nil
}

func (p *pools) addPosition(args []string) error {
	vals, err := parseFloats(args, 3, 4)
	if err != nil {
		return err
	}
	w := float32(1)
	if len(vals) == 4 {
		w = vals[3]
	}
	p.positions = append(p.positions, math.Vec4{X: vals[0], Y: vals[1], Z: vals[2], W: w})
	return nil
}

func (p *pools) addTexCoord(args []string) error {
	vals, err := parseFloats(args, 2, 3)
	if err != nil {
		return err
	}
	p.texCoords = append(p.texCoords, math.Vec2{X: vals[0], Y: vals[1]})
	return nil
}

func (p *pools) addNormal(args []string) error {
	vals, err := parseFloats(args, 3, 3)
	if err != nil {
		return err
	}
	p.normals = append(p.normals, math.Vec3{X: vals[0], Y: vals[1], Z: vals[2]})
	return nil
}

// emitFace appends the three corners of a triangle to mesh. Corners are
// resolved before anything is appended, so a bad corner leaves mesh intact.
func (p *pools) emitFace(mesh *Mesh, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: %d vertices", ErrNonTriangularFace, len(args))
	}

	var (
		pos [3]math.Vec4
		uv  [3]math.Vec2
		nrm [3]math.Vec3
	)
	for i, tok := range args {
		pi, ti, ni, err := splitCorner(tok)
		if err != nil {
			return err
		}

		idx, err := resolve(pi, len(p.positions), "position")
		if err != nil {
			return err
		}
		pos[i] = p.positions[idx]

		if ti != 0 {
			idx, err := resolve(ti, len(p.texCoords), "texcoord")
			if err != nil {
				return err
			}
			uv[i] = p.texCoords[idx]
		}
		if ni != 0 {
			idx, err := resolve(ni, len(p.normals), "normal")
			if err != nil {
				return err
			}
			nrm[i] = p.normals[idx]
		}
	}

	mesh.Positions = append(mesh.Positions, pos[:]...)
	mesh.TexCoords = append(mesh.TexCoords, uv[:]...)
	mesh.Normals = append(mesh.Normals, nrm[:]...)
	return nil
}

// splitCorner splits "p/t/n" into raw indices; 0 marks an absent index.
func splitCorner(tok string) (pos, tex, nrm int, err error) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 || parts[0] == "" {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrMalformedFace, tok)
	}

	var idx [3]int
	for i, s := range parts {
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
		}
		if n == 0 {
			return 0, 0, 0, fmt.Errorf("%w: index 0 in %q", ErrIndexOutOfRange, tok)
		}
		idx[i] = n
	}
	return idx[0], idx[1], idx[2], nil
}

// resolve converts a 1-based (or negative, relative) file index into a
// 0-based pool index.
func resolve(n, size int, pool string) (int, error) {
	i := n - 1
	if n < 0 {
		i = size + n
	}
	if i < 0 || i >= size {
		return 0, fmt.Errorf("%w: %s %d (pool has %d)", ErrIndexOutOfRange, pool, n, size)
	}
	return i, nil
}

func parseFloats(args []string, minN, maxN int) ([]float32, error) {
	if len(args) < minN {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrMissingComponent, minN, len(args))
	}
	if len(args) > maxN {
		args = args[:maxN]
	}
	vals := make([]float32, len(args))
	for i, s := range args {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil || stdmath.IsNaN(f) || stdmath.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
		}
		vals[i] = float32(f)
	}
	return vals, nil
}
