package document

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"catalog-sync/core/record"
	"catalog-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestObjectStore_Read tests downloading and decoding a document.
func TestObjectStore_Read(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "catalog", "site/catalogo.html", mock.Anything).
		Return(io.NopCloser(strings.NewReader("\xEF\xBB\xBF<pre></pre>")), nil)

	store := NewObjectStore(client, "catalog", "/site/", zap.NewNop())
	doc, err := store.Read(context.Background(), "catalogo.html")
	require.NoError(t, err)
	assert.True(t, doc.BOM)
	assert.Equal(t, "<pre></pre>", doc.Text)
	client.AssertExpectations(t)
}

// TestObjectStore_WriteWithBackup tests that the current object is copied before the upload.
func TestObjectStore_WriteWithBackup(t *testing.T) {
	client := new(mocks.Client)
	client.On("StatObject", mock.Anything, "catalog", "catalogo.html", mock.Anything).
		Return(minio.ObjectInfo{Key: "catalogo.html"}, nil)
	client.On("CopyObject", mock.Anything,
		minio.CopyDestOptions{Bucket: "catalog", Object: "catalogo.html.bak_20240305_140709"},
		minio.CopySrcOptions{Bucket: "catalog", Object: "catalogo.html"},
	).Return(minio.UploadInfo{}, nil)

	client.On("PutObject", mock.Anything, "catalog", "catalogo.html", mock.Anything, int64(5), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	store := NewObjectStore(client, "catalog", "", zap.NewNop())
	store.now = fixedNow

	res, err := store.Write(context.Background(), "catalogo.html", &Document{Text: "nuevo", Encoding: EncodingUTF8}, WriteOptions{Backup: true})
	require.NoError(t, err)
	assert.Equal(t, "catalogo.html.bak_20240305_140709", res.BackupName)
	assert.Equal(t, 5, res.Bytes)
	client.AssertExpectations(t)
}

// TestObjectStore_Write tests a plain upload.
func TestObjectStore_Write(t *testing.T) {
	client := new(mocks.Client)
	var uploaded []byte
	client.On("PutObject", mock.Anything, "catalog", "catalogo.html", mock.Anything, int64(8), mock.Anything).
		Run(func(args mock.Arguments) {
			uploaded, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil)

	store := NewObjectStore(client, "catalog", "", zap.NewNop())
	res, err := store.Write(context.Background(), "catalogo.html", &Document{Text: "nuevo", Encoding: EncodingUTF8, BOM: true}, WriteOptions{})
	require.NoError(t, err)
	assert.Equal(t, "catalogo.html", res.Name)
	assert.True(t, bytes.HasPrefix(uploaded, []byte{0xEF, 0xBB, 0xBF}))
	client.AssertNotCalled(t, "CopyObject", mock.Anything, mock.Anything, mock.Anything)
}

// TestObjectStore_Exists tests not-found detection.
func TestObjectStore_Exists(t *testing.T) {
	client := new(mocks.Client)
	client.On("StatObject", mock.Anything, "catalog", "missing.html", mock.Anything).
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404})
	client.On("StatObject", mock.Anything, "catalog", "denied.html", mock.Anything).
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403})

	store := NewObjectStore(client, "catalog", "", zap.NewNop())

	ok, err := store.Exists(context.Background(), "missing.html")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Exists(context.Background(), "denied.html")
	assert.ErrorIs(t, err, record.ErrIO)
}

// TestObjectStore_PruneBackups tests that only the newest backups survive.
func TestObjectStore_PruneBackups(t *testing.T) {
	client := new(mocks.Client)

	listCh := make(chan minio.ObjectInfo, 3)
	listCh <- minio.ObjectInfo{Key: "catalogo.html.bak_20240103_000000"}
	listCh <- minio.ObjectInfo{Key: "catalogo.html.bak_20240101_000000"}
	listCh <- minio.ObjectInfo{Key: "catalogo.html.bak_20240102_000000"}
	close(listCh)
	client.On("ListObjects", mock.Anything, "catalog", mock.Anything).Return((<-chan minio.ObjectInfo)(listCh))

	var removed []string
	client.On("RemoveObjects", mock.Anything, "catalog", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			for obj := range args.Get(2).(<-chan minio.ObjectInfo) {
				removed = append(removed, obj.Key)
			}
		}).
		Return(nil)

	store := NewObjectStore(client, "catalog", "", zap.NewNop())
	n, err := store.PruneBackups(context.Background(), "catalogo.html", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"catalogo.html.bak_20240101_000000", "catalogo.html.bak_20240102_000000"}, removed)
}
