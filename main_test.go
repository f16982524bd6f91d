package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rlebw/inspect"
	"rlebw/parallel"
)

func run(t *testing.T, out io.Writer, args ...string) error {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("rlebw"),
		kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }),
		kong.BindTo(out, (*io.Writer)(nil)),
		kong.BindToProvider(func() (*parallel.Pool, error) {
			return parallel.Start(cli.Workers), nil
		}),
	)
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return kctx.Run(kctx.Selected().Name)
}

func TestPipeline(t *testing.T) {
	dir := t.TempDir()
	path := func(name string) string { return filepath.Join(dir, name) }
	var out bytes.Buffer

	require.NoError(t, run(t, &out, "generate", "chessboard", "--width=8", "--height=4", "--edge=2", "-o", path("board.pbm")))
	require.NoError(t, run(t, &out, "generate", "solid", "--width=8", "--height=4", "--value=black", "-o", path("black.pbm")))
	require.NoError(t, run(t, &out, "generate", "solid", "--width=8", "--height=4", "-o", path("white.pbm")))

	require.NoError(t, run(t, &out, "combine", "and", path("board.pbm"), path("black.pbm"), "-o", path("and.pbm")))
	require.NoError(t, run(t, &out, "combine", "and", path("board.pbm"), path("black.pbm"), "--decoded", "-o", path("and-decoded.pbm")))
	require.NoError(t, run(t, &out, "combine", "xor", path("board.pbm"), path("white.pbm"), "-o", path("xor.pbm")))
	require.NoError(t, run(t, &out, "combine", "neg", path("board.pbm"), "-o", path("neg.pbm")))
	require.NoError(t, run(t, &out, "transform", "hmirror", path("board.pbm"), "-o", path("hmirror.pbm")))

	out.Reset()
	require.NoError(t, run(t, &out, "inspect", "compare", path("board.pbm"), path("and.pbm")))
	require.NoError(t, run(t, &out, "inspect", "compare", path("and.pbm"), path("and-decoded.pbm")))
	require.NoError(t, run(t, &out, "inspect", "compare", path("board.pbm"), path("xor.pbm")))
	assert.Equal(t, 3, strings.Count(out.String(), "are equal"))

	err := run(t, &out, "inspect", "compare", path("board.pbm"), path("neg.pbm"))
	assert.ErrorIs(t, err, inspect.ErrDifferent)
	err = run(t, &out, "inspect", "compare", path("board.pbm"), path("hmirror.pbm"))
	assert.ErrorIs(t, err, inspect.ErrDifferent)

	out.Reset()
	require.NoError(t, run(t, &out, "inspect", "raw", path("board.pbm")))
	assert.Equal(t, "width = 8 height = 4\nRAW image:\n11001100\n11001100\n00110011\n00110011\n\n", out.String())
}

func TestTransformCommands(t *testing.T) {
	dir := t.TempDir()
	path := func(name string) string { return filepath.Join(dir, name) }
	var out bytes.Buffer

	require.NoError(t, run(t, &out, "generate", "chessboard", "--width=8", "--height=4", "--edge=2", "-o", path("board.pbm")))
	require.NoError(t, run(t, &out, "generate", "solid", "--width=8", "--height=4", "--value=black", "-o", path("black.pbm")))
	require.NoError(t, run(t, &out, "combine", "neg", path("board.pbm"), "-o", path("neg.pbm")))

	// Squares of this board are symmetric: both mirrors equal the negation.
	require.NoError(t, run(t, &out, "transform", "vmirror", path("board.pbm"), "-o", path("vmirror.pbm")))
	require.NoError(t, run(t, &out, "transform", "hmirror", path("board.pbm"), "-o", path("hmirror.pbm")))
	require.NoError(t, run(t, &out, "inspect", "compare", path("vmirror.pbm"), path("neg.pbm")))
	require.NoError(t, run(t, &out, "inspect", "compare", path("hmirror.pbm"), path("vmirror.pbm")))

	require.NoError(t, run(t, &out, "transform", "bottom", path("board.pbm"), path("black.pbm"), "-o", path("bottom.pbm")))
	out.Reset()
	require.NoError(t, run(t, &out, "inspect", "info", path("bottom.pbm")))
	assert.Contains(t, out.String(), "width: 8\nheight: 8\n")
	assert.Contains(t, out.String(), "runs: 20\n")

	require.NoError(t, run(t, &out, "transform", "right", path("board.pbm"), path("black.pbm"), "-o", path("right.pbm")))
	out.Reset()
	require.NoError(t, run(t, &out, "inspect", "rle", path("right.pbm")))
	assert.Equal(t, "width = 16 height = 4\nRLE encoding:\n"+
		"1 2 2 2 2 8 -1\n1 2 2 2 2 8 -1\n0 2 2 2 10 -1\n0 2 2 2 10 -1\n\n", out.String())

	assert.Error(t, run(t, &out, "transform", "bottom", path("board.pbm"), path("right.pbm"), "-o", path("bad.pbm")))
}

func TestCombineStats(t *testing.T) {
	dir := t.TempDir()
	path := func(name string) string { return filepath.Join(dir, name) }
	var out bytes.Buffer

	require.NoError(t, run(t, &out, "generate", "chessboard", "--width=8", "--height=4", "--edge=2", "-o", path("board.pbm")))
	require.NoError(t, run(t, &out, "generate", "solid", "--width=8", "--height=4", "--value=black", "-o", path("black.pbm")))

	out.Reset()
	require.NoError(t, run(t, &out, "combine", "or", path("board.pbm"), path("black.pbm"), "--stats", "-o", path("or.pbm")))
	assert.Equal(t, "oper: 16\n", out.String())

	out.Reset()
	require.NoError(t, run(t, &out, "combine", "or", path("board.pbm"), path("black.pbm"), "--stats", "--decoded", "-o", path("or-decoded.pbm")))
	assert.Equal(t, "oper: 32\n", out.String())

	require.NoError(t, run(t, &out, "inspect", "compare", path("or.pbm"), path("black.pbm")))
	require.NoError(t, run(t, &out, "inspect", "compare", path("or-decoded.pbm"), path("black.pbm")))
}

func TestOutputFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	path := func(name string) string { return filepath.Join(dir, name) }
	var out bytes.Buffer

	require.NoError(t, run(t, &out, "generate", "chessboard", "--width=6", "--height=4", "--edge=2", "-o", path("board.pbm")))
	require.NoError(t, run(t, &out, "transform", "vmirror", path("board.pbm"), "-o", path("mirror.png")))
	require.NoError(t, run(t, &out, "convert", "import", path("mirror.png"), "--dest", path("back")))
	require.NoError(t, run(t, &out, "transform", "vmirror", filepath.Join(dir, "back", "mirror.pbm"), "-o", path("twice.pbm")))
	require.NoError(t, run(t, &out, "inspect", "compare", path("board.pbm"), path("twice.pbm")))

	assert.Error(t, run(t, &out, "generate", "solid", "--width=2", "--height=2", "-o", path("img.jpeg")))
	assert.Error(t, run(t, &out, "generate", "solid", "--width=2", "--height=2", "-o", path("img")))
}

func TestBenchCommands(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(t, &out, "bench", "and", "--height=2", "--widths=3,5", "--pattern=chessboard"))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "WIDTH,Time(s),Operations", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "3,"), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], ",10"), lines[2])

	out.Reset()
	require.NoError(t, run(t, &out, "bench", "chessboard", "--sizes=4", "--edges=1,2,3"))
	lines = strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Size,SquareEdge,Runs,MemoryBytes", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "4,1,16,"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "4,2,8,"), lines[2])

	csvPath := filepath.Join(t.TempDir(), "and.csv")
	out.Reset()
	require.NoError(t, run(t, &out, "bench", "and", "--height=1", "--widths=4", "-o", csvPath))
	assert.Empty(t, out.String())
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "WIDTH,Time(s),Operations\n4,"))
}

func TestConvertRefusesDuplicateNames(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	for _, sub := range []string{"a", "b"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
		require.NoError(t, run(t, &out, "generate", "solid", "--width=2", "--height=2", "-o", filepath.Join(dir, sub, "x.png")))
	}

	err := run(t, &out, "convert", "import", filepath.Join(dir, "a", "x.png"), filepath.Join(dir, "b", "x.png"), "--dest", filepath.Join(dir, "out"))
	assert.ErrorContains(t, err, "would both be written")
	_, err = os.Stat(filepath.Join(dir, "out", "x.pbm"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOverwriteRefused(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "img.pbm")
	var out bytes.Buffer

	require.NoError(t, run(t, &out, "generate", "solid", "--width=2", "--height=2", "-o", dest))
	assert.Error(t, run(t, &out, "generate", "solid", "--width=2", "--height=2", "-o", dest))
	assert.NoError(t, run(t, &out, "generate", "solid", "--width=2", "--height=2", "--overwrite", "-o", dest))
}

func TestChessboardEdgeMustDivide(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "img.pbm")
	assert.Error(t, run(t, io.Discard, "generate", "chessboard", "--width=5", "--height=4", "--edge=2", "-o", dest))
}

func TestConvertRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "board.pbm")
	var out bytes.Buffer

	require.NoError(t, run(t, &out, "generate", "chessboard", "--width=6", "--height=6", "--edge=3", "-o", src))
	require.NoError(t, run(t, &out, "convert", "export", src, "--dest", filepath.Join(dir, "png"), "--format=png"))
	require.NoError(t, run(t, &out, "convert", "import", filepath.Join(dir, "png", "board.png"), "--dest", filepath.Join(dir, "back")))
	require.NoError(t, run(t, &out, "inspect", "compare", src, filepath.Join(dir, "back", "board.pbm")))
}
