package testsupport

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"
)

// Tree maps slash-separated relative paths to file contents.
type Tree map[string]string

// WriteTree materializes files below root.
func WriteTree(t testing.TB, root string, files Tree) {
	t.Helper()

	for name, body := range files {
		target := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", target, err)
		}
		if err := os.WriteFile(target, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", target, err)
		}
	}
}

// NewFixtureServer serves files over HTTP. Unknown paths return 404.
func NewFixtureServer(t testing.TB, files Tree) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		body, ok := files[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if strings.HasSuffix(name, ".json") {
			w.Header().Set("Content-Type", "application/json")
		} else {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// SampleTree returns a small bilingual catalog. It lists one missing ID file
// and one malformed detail file to exercise partial failures.
func SampleTree() Tree {
	return Tree{
		"IDs/manifest.json": `{"albums":["a.txt","b.txt","missing.txt"]}`,
		"IDs/a.txt":         "111\t春之歌 Spring Song\n222\t夏夜 Summer Night\n",
		"IDs/b.txt":         "333\tWinter Tale\nbroken line\n",
		"data/data.json":    `{"2020":["2020/first.json"],"2021":["2021/second.json","2021/bad.json"]}`,
		"data/2020/first.json": `[{"album":"First Light 初光","tracks":[
			{"track":"春之歌 Spring Song","album":"First Light 初光","date":"2020-01-01","作曲/Composer":"John Smith","編曲":"Jane Doe","Vocal / 演唱":"Alice"},
			{"track":"夏夜 Summer Night","作曲":"Li Hua","配器 Arranger":"John Jones","BPM":120}
		]}]`,
		"data/2021/second.json": `{"album":"Second Wind 次風","tracks":[
			{"track":"Winter Tale","作詞":"Bob","原编曲":"Carol","Vocal":"Alice Smith"},
			{"track":"無名曲","Mixing Engineer":"Dan"}
		]}`,
		"data/2021/bad.json": `{not json`,
		"personnel.json":     `["John Smith","Alice","Li Hua"]`,
	}
}
