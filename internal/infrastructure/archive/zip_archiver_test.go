package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ik-portal/internal/application/ports"
)

func TestArchive_Icerik(t *testing.T) {
	out, err := NewZipArchiver().Archive([]ports.ArchiveFile{
		{Name: "bordro-2025-04-P1.pdf", Content: []byte("%PDF-1")},
		{Name: "bordro-2025-04-P1.pdf", Content: []byte("%PDF-2")},
		{Name: "../../etc/bordro.xml", Content: []byte("<a/>")},
	})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)
	require.Len(t, zr.File, 3)

	names := []string{zr.File[0].Name, zr.File[1].Name, zr.File[2].Name}
	assert.Equal(t, []string{"bordro-2025-04-P1.pdf", "bordro-2025-04-P1-2.pdf", "bordro.xml"}, names)

	rc, err := zr.File[1].Open()
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-2", string(body))
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "Ay_e.pdf", SafeName("Ayşe.pdf"))
	assert.Equal(t, "x.pdf", SafeName(`C:\tmp\x.pdf`))
	assert.Equal(t, "dosya", SafeName(".."))
}
