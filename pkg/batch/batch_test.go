package batch

import (
	"bytes"
	"crypto/rand"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jtolio/shift/pkg/enc"
	"github.com/jtolio/shift/pkg/utils"
)

func randData(t *testing.T, amount int) []byte {
	data := make([]byte, amount)
	_, err := rand.Read(data)
	require.NoError(t, err)
	return data
}

func writeFile(t *testing.T, path string, data []byte) string {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, ioutil.WriteFile(path, data, 0644))
	return path
}

func readFile(t *testing.T, path string) []byte {
	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	return data
}

type testEnv struct {
	in, out      string
	stdout, errs bytes.Buffer
	driver       *Driver
}

func newTestEnv(t *testing.T, atomic bool) *testEnv {
	root := t.TempDir()
	env := &testEnv{
		in:  filepath.Join(root, "in"),
		out: filepath.Join(root, "out"),
	}
	require.NoError(t, os.MkdirAll(env.out, 0755))
	env.driver = NewDriver(Config{
		Codec:     enc.NewShiftCodec(enc.DefaultKey),
		ChunkSize: 1024,
		OutputDir: env.out,
		Atomic:    atomic,
		Log:       utils.NewLogger(utils.LevelNormal, &env.stdout, &env.errs),
	})
	return env
}

func TestProcessRoundTrip(t *testing.T) {
	for _, atomic := range []bool{false, true} {
		env := newTestEnv(t, atomic)
		c := enc.NewShiftCodec(enc.DefaultKey)
		plain := randData(t, 10000)
		input := writeFile(t, filepath.Join(env.in, "data.bin"), plain)

		res := env.driver.Process(enc.Forward, []string{input})
		require.Len(t, res.Outcomes, 1)
		require.NoError(t, res.Outcomes[0].Err)
		require.Equal(t, int64(len(plain)), res.Outcomes[0].Bytes)
		encoded := filepath.Join(env.out, "data_enc.bin")
		require.Equal(t, encoded, res.Outcomes[0].Job.Output)
		require.Equal(t, enc.Apply(c, enc.Forward, plain), readFile(t, encoded))

		res = env.driver.Process(enc.Inverse, []string{encoded})
		require.Empty(t, res.Failed())
		require.Equal(t, plain, readFile(t, filepath.Join(env.out, "data_enc_dec.bin")))
		require.Contains(t, env.stdout.String(), "encrypted successfully")
		require.Contains(t, env.stdout.String(), "decrypted successfully")
		require.Zero(t, env.errs.Len())
	}
}

func TestProcessMissingInput(t *testing.T) {
	env := newTestEnv(t, false)
	first := writeFile(t, filepath.Join(env.in, "first.txt"), []byte("hello"))
	third := writeFile(t, filepath.Join(env.in, "third"), []byte("world"))
	missing := filepath.Join(env.in, "missing.txt")

	res := env.driver.Process(enc.Forward, []string{first, missing, third})
	require.Equal(t, 0, res.ExitCode())
	require.Len(t, res.Outcomes, 3)
	require.Len(t, res.Succeeded(), 2)

	failed := res.Failed()
	require.Len(t, failed, 1)
	require.Equal(t, missing, failed[0].Job.Input)
	require.True(t, ErrMissingInput.Has(failed[0].Err))

	require.Equal(t, []byte("lipps"), readFile(t, filepath.Join(env.out, "first_enc.txt")))
	require.Equal(t, []byte("{svph"), readFile(t, filepath.Join(env.out, "third_enc")))
	_, err := os.Stat(filepath.Join(env.out, "missing_enc.txt"))
	require.True(t, os.IsNotExist(err))
	require.Contains(t, env.errs.String(), "does not exist")
}

func TestProcessUncreatableSink(t *testing.T) {
	env := newTestEnv(t, false)
	plain := []byte("untouched")
	input := writeFile(t, filepath.Join(env.in, "file.txt"), plain)
	env.driver.outputDir = filepath.Join(env.out, "does", "not", "exist")

	res := env.driver.Process(enc.Forward, []string{input})
	require.Equal(t, 0, res.ExitCode())
	require.Len(t, res.Failed(), 1)
	require.True(t, ErrIO.Has(res.Failed()[0].Err))
	require.Equal(t, plain, readFile(t, input))
}

func TestProcessDirectoryInput(t *testing.T) {
	for _, atomic := range []bool{false, true} {
		env := newTestEnv(t, atomic)
		dir := filepath.Join(env.in, "adir")
		require.NoError(t, os.MkdirAll(dir, 0755))
		after := writeFile(t, filepath.Join(env.in, "after.txt"), []byte("ok"))

		res := env.driver.Process(enc.Forward, []string{dir, after})
		require.Equal(t, 0, res.ExitCode())
		failed := res.Failed()
		require.Len(t, failed, 1)
		require.Equal(t, dir, failed[0].Job.Input)
		require.True(t, ErrIO.Has(failed[0].Err))

		_, err := os.Stat(filepath.Join(env.out, "adir_enc"))
		require.True(t, os.IsNotExist(err))
		require.Equal(t, []byte("so"), readFile(t, filepath.Join(env.out, "after_enc.txt")))
	}
}

func TestProcessSameNameCollides(t *testing.T) {
	env := newTestEnv(t, false)
	a := writeFile(t, filepath.Join(env.in, "a", "same.txt"), []byte{1})
	b := writeFile(t, filepath.Join(env.in, "b", "same.txt"), []byte{2})

	res := env.driver.Process(enc.Forward, []string{a, b})
	require.Empty(t, res.Failed())
	require.Equal(t, res.Outcomes[0].Job.Output, res.Outcomes[1].Job.Output)
	require.Equal(t, []byte{6}, readFile(t, filepath.Join(env.out, "same_enc.txt")))
}

func TestProcessEmptyFile(t *testing.T) {
	env := newTestEnv(t, true)
	input := writeFile(t, filepath.Join(env.in, "empty"), nil)
	res := env.driver.Process(enc.Forward, []string{input})
	require.Empty(t, res.Failed())
	require.Empty(t, readFile(t, filepath.Join(env.out, "empty_enc")))
}

func TestProcessEmptyBatch(t *testing.T) {
	env := newTestEnv(t, false)
	res := env.driver.Process(enc.Forward, nil)
	require.Empty(t, res.Outcomes)
	require.Equal(t, 0, res.ExitCode())
}

func TestJobs(t *testing.T) {
	d := NewDriver(Config{})
	jobs := d.Jobs(enc.Inverse, []string{"dir/sub/file.dat", "noext"})
	require.Equal(t, []FileJob{
		{Input: "dir/sub/file.dat", Output: "file_dec.dat", Direction: enc.Inverse},
		{Input: "noext", Output: "noext_dec", Direction: enc.Inverse},
	}, jobs)
}
