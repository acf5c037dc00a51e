package settings_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shop-admin/internal/application/settings"
	"github.com/jhoicas/shop-admin/internal/domain"
	"github.com/jhoicas/shop-admin/internal/testutil"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type memLogoStore struct {
	saved map[string][]byte
}

func (m *memLogoStore) Save(_ context.Context, name string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	m.saved[name] = b
	return "/static/images/" + name, nil
}

func upload(name string, body []byte) settings.LogoUpload {
	return settings.LogoUpload{Filename: name, Size: int64(len(body)), Body: bytes.NewReader(body)}
}

func TestUpdateLogo_GuardaYAsociaURL(t *testing.T) {
	store := testutil.NewStore()
	owner := testutil.SeedOwner(t, store, "ana")
	logos := &memLogoStore{}
	uc := settings.NewLogoUseCase(store.Users(), logos, 1<<20)

	out, err := uc.UpdateLogo(context.Background(), owner.ID, upload("Mi Logó.PNG", pngHeader))
	require.NoError(t, err)

	name := owner.ID + "_Mi_Logo.png"
	assert.Equal(t, "/static/images/"+name, out.LogoURL)
	assert.Equal(t, pngHeader, logos.saved[name])

	stored, err := store.Users().GetByID(context.Background(), owner.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LogoURL)
	assert.Equal(t, out.LogoURL, *stored.LogoURL)
}

func TestUpdateLogo_ExtensionSegunContenido(t *testing.T) {
	store := testutil.NewStore()
	owner := testutil.SeedOwner(t, store, "ana")
	logos := &memLogoStore{}
	uc := settings.NewLogoUseCase(store.Users(), logos, 1<<20)

	out, err := uc.UpdateLogo(context.Background(), owner.ID, upload("../../etc/evil.html", pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "/static/images/"+owner.ID+"_evil.png", out.LogoURL)
}

func TestUpdateLogo_Rechazos(t *testing.T) {
	store := testutil.NewStore()
	owner := testutil.SeedOwner(t, store, "ana")
	staff := testutil.SeedStaff(t, store, owner, "beto")
	logos := &memLogoStore{}
	uc := settings.NewLogoUseCase(store.Users(), logos, 64)

	_, err := uc.UpdateLogo(context.Background(), owner.ID, upload("a.txt", []byte("hola, no soy una imagen")))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateLogo(context.Background(), owner.ID, upload("big.png", append(pngHeader, make([]byte, 100)...)))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateLogo(context.Background(), owner.ID, upload("empty.png", nil))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateLogo(context.Background(), staff.ID, upload("a.png", pngHeader))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.Empty(t, logos.saved)
}

func TestSecureFilename(t *testing.T) {
	cases := map[string]string{
		"logo.png":          "logo.png",
		"Año Nuevo.jpg":     "Ano_Nuevo.jpg",
		"../../etc/passwd":  "passwd",
		`C:\fotos\logo.gif`: "logo.gif",
		".hidden":           "hidden",
		"日本語":               "",
		"a<b>c?.webp":       "abc.webp",
	}
	for in, want := range cases {
		assert.Equal(t, want, settings.SecureFilename(in), in)
	}
}
