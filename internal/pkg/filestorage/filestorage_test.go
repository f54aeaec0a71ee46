package filestorage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveKey(t *testing.T) {
	now := time.Date(2024, 5, 17, 10, 15, 0, 0, time.UTC)
	key := ArchiveKey("books", "Daftar Buku.XLSX", now)

	assert.True(t, strings.HasPrefix(key, "books/2024/05/20240517-101500-"), key)
	assert.True(t, strings.HasSuffix(key, ".xlsx"), key)
	assert.NotEqual(t, key, ArchiveKey("books", "Daftar Buku.XLSX", now))
}

func TestLocalStorageSaveAndDelete(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base)
	require.NoError(t, err)

	ctx := context.Background()
	loc, err := ls.Save(ctx, "authors/2024/a.csv", strings.NewReader("NO,NAMA"), 7, "text/csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "authors", "2024", "a.csv"), loc)

	content, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "NO,NAMA", string(content))

	require.NoError(t, ls.Delete(ctx, "authors/2024/a.csv"))
	_, err = os.Stat(loc)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, ls.Delete(ctx, "authors/2024/a.csv"))
}

func TestLocalStorageRejectsEscapingKeys(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = ls.Save(context.Background(), "../outside.csv", strings.NewReader("x"), 1, "")
	assert.Error(t, err)
	_, err = ls.Save(context.Background(), "/etc/passwd", strings.NewReader("x"), 1, "")
	assert.Error(t, err)
}

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	deletes []*s3.DeleteObjectInput
	body    bytes.Buffer
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	_, _ = f.body.ReadFrom(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3StorageSave(t *testing.T) {
	fake := &fakeS3{}
	store := &S3Storage{client: fake, bucket: "imports", endpoint: "https://s3.example.com/"}

	loc, err := store.Save(context.Background(), "books/a.xlsx", strings.NewReader("data"), 4, "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com/imports/books/a.xlsx", loc)
	require.Len(t, fake.puts, 1)
	assert.Equal(t, "imports", aws.ToString(fake.puts[0].Bucket))
	assert.Equal(t, "books/a.xlsx", aws.ToString(fake.puts[0].Key))
	assert.Equal(t, int64(4), aws.ToInt64(fake.puts[0].ContentLength))
	assert.Equal(t, "data", fake.body.String())

	require.NoError(t, store.Delete(context.Background(), "books/a.xlsx"))
	require.Len(t, fake.deletes, 1)
}

func TestS3StorageLocationWithoutEndpoint(t *testing.T) {
	store := &S3Storage{client: &fakeS3{}, bucket: "imports"}
	assert.Equal(t, "s3://imports/k", store.location("k"))
}
