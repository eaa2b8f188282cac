package base_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aacfactory/certmaker"
	"github.com/aacfactory/certmaker/commands/certmaker/base"
)

func execute(t *testing.T, stdin string, args ...string) (stdout string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := base.NewCommand(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "certmaker.yaml")))
	err = cmd.Execute()
	stdout = out.String()
	return
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	stdout, err := execute(t, "", "generate", "--cn", "example.com", "--bits", "1024", "--days", "10", "--out", dir, "--der")
	if err != nil {
		t.Fatal(err)
	}
	basePath := filepath.Join(dir, "example.com")
	for _, path := range []string{basePath + "_cert.pem", basePath + "_key.pem", basePath + ".cer"} {
		if !exists(path) {
			t.Errorf("%s not written", path)
		}
		if !strings.Contains(stdout, path) {
			t.Errorf("output does not list %s: %q", path, stdout)
		}
	}
	certPEM, _ := os.ReadFile(basePath + "_cert.pem")
	info, err := certmaker.Inspect(certPEM)
	if err != nil {
		t.Fatal(err)
	}
	if info.CommonName != "example.com" || info.ValidityDays != 10 || info.KeyBits != 1024 {
		t.Errorf("info %+v", info)
	}
}

func TestGenerateCommandValidation(t *testing.T) {
	_, err := execute(t, "", "generate", "--bits", "1024")
	if base.ExitCode(err) != base.ExitValidation {
		t.Fatalf("exit code %d: %v", base.ExitCode(err), err)
	}
	for _, want := range []string{"Common Name is required", "Output location is required"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("%q does not mention %q", err.Error(), want)
		}
	}
}

func writeOld(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestGenerateCommandOverwriteDeclined(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "site_cert.pem")
	writeOld(t, certPath)
	stdout, err := execute(t, "n\n", "generate", "--cn", "site", "--bits", "1024", "--out", dir)
	if !errors.Is(err, base.ErrCanceled) || base.ExitCode(err) != base.ExitCanceled {
		t.Fatalf("err %v", err)
	}
	if !strings.Contains(stdout, "Do you want to overwrite them?") || !strings.Contains(stdout, certPath) {
		t.Errorf("prompt %q", stdout)
	}
	if !strings.Contains(stdout, "certificate generation canceled by the user") {
		t.Errorf("output %q", stdout)
	}
	if p, _ := os.ReadFile(certPath); string(p) != "old" {
		t.Error("certificate overwritten")
	}
	if exists(filepath.Join(dir, "site_key.pem")) {
		t.Error("key written after cancel")
	}
}

func TestGenerateCommandOverwriteAccepted(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "site_key.pem")
	writeOld(t, keyPath)
	if _, err := execute(t, "yes\n", "generate", "--cn", "site", "--bits", "1024", "--out", dir); err != nil {
		t.Fatal(err)
	}
	if p, _ := os.ReadFile(keyPath); string(p) == "old" {
		t.Error("key not overwritten")
	}
}

func TestGenerateCommandForce(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "site_cert.pem")
	writeOld(t, certPath)
	stdout, err := execute(t, "", "generate", "--cn", "site", "--bits", "1024", "--out", dir, "--force")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(stdout, "overwrite") {
		t.Errorf("prompted with --force: %q", stdout)
	}
	if p, _ := os.ReadFile(certPath); string(p) == "old" {
		t.Error("certificate not overwritten")
	}
}

func TestGenerateCommandProfile(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	if err := os.Mkdir(outDir, 0755); err != nil {
		t.Fatal(err)
	}
	metricsFile := filepath.Join(dir, "certmaker.prom")
	profilePath := filepath.Join(dir, "profile.yaml")
	profile := "keyBits: 1024\nvalidityDays: 3\noutputDir: " + outDir + "\nder: true\nmetricsFile: " + metricsFile + "\n"
	if err := os.WriteFile(profilePath, []byte(profile), 0644); err != nil {
		t.Fatal(err)
	}
	var out, errOut bytes.Buffer
	cmd := base.NewCommand(strings.NewReader(""), &out, &errOut)
	cmd.SetArgs([]string{"generate", "--cn", "profiled", "--config", profilePath})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !exists(filepath.Join(outDir, "profiled.cer")) {
		t.Error("der file from profile not written")
	}
	certPEM, _ := os.ReadFile(filepath.Join(outDir, "profiled_cert.pem"))
	info, err := certmaker.Inspect(certPEM)
	if err != nil {
		t.Fatal(err)
	}
	if info.ValidityDays != 3 || info.KeyBits != 1024 {
		t.Errorf("info %+v", info)
	}
	metrics, err := os.ReadFile(metricsFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(metrics), `certmaker_generations_total{result="success"} 1`) {
		t.Errorf("metrics %s", metrics)
	}
}

func TestDERCommand(t *testing.T) {
	dir := t.TempDir()
	result, err := certmaker.Run(certmaker.Request{CommonName: "conv", KeyBits: 1024, ValidityDays: 5, OutputDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	stdout, err := execute(t, "", "der", "--cert", result.Paths[0])
	if err != nil {
		t.Fatal(err)
	}
	derPath := filepath.Join(dir, "conv.cer")
	if !strings.Contains(stdout, derPath) {
		t.Errorf("output %q", stdout)
	}
	der, err := os.ReadFile(derPath)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := certmaker.EncodeDER(result.CertificatePEM)
	if !bytes.Equal(der, want) {
		t.Error("der differs")
	}
}

func TestDERCommandErrors(t *testing.T) {
	if _, err := execute(t, "", "der"); base.ExitCode(err) != base.ExitValidation {
		t.Errorf("missing cert: %v", err)
	}
	if _, err := execute(t, "", "der", "--cert", filepath.Join(t.TempDir(), "none.pem")); !certmaker.IsKind(err, certmaker.KindIO) {
		t.Errorf("missing file: %v", err)
	}
	bad := filepath.Join(t.TempDir(), "bad.pem")
	writeOld(t, bad)
	if _, err := execute(t, "", "der", "--cert", bad); !certmaker.IsKind(err, certmaker.KindParse) {
		t.Errorf("bad pem: %v", err)
	}
}

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	result, err := certmaker.Run(certmaker.Request{CommonName: "example.com", KeyBits: 1024, ValidityDays: 365, OutputDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	stdout, err := execute(t, "", "inspect", result.Paths[0], "--key", result.Paths[1])
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"commonName: example.com", "validityDays: 365", "keyBits: 1024", "selfSigned: true", "keyMatches: true", "signatureAlgorithm: SHA256-RSA"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output does not contain %q:\n%s", want, stdout)
		}
	}
}

func TestExitCode(t *testing.T) {
	cases := map[int]error{
		base.ExitOK:         nil,
		base.ExitFailure:    errors.New("x"),
		base.ExitValidation: certmaker.ValidationError(errors.New("x")),
		base.ExitCanceled:   base.ErrCanceled,
	}
	for want, err := range cases {
		if got := base.ExitCode(err); got != want {
			t.Errorf("exit code for %v = %d, want %d", err, got, want)
		}
	}
}
