package upload

import (
	"context"

	"github.com/google/uuid"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
)

// Item is one queued file and its progress.
type Item struct {
	LocalID string             `json:"localId"`
	File    File               `json:"-"`
	Status  model.UploadStatus `json:"status"`
	Err     error              `json:"-"`
	Upload  *model.FileUpload  `json:"upload,omitempty"`
}

// Uploader is satisfied by *Service.
type Uploader interface {
	Upload(ctx context.Context, parent model.Parent, opts Options, f File) (*model.FileUpload, error)
}

// Batch uploads files one at a time in order.  A failing file is reported
// through OnError and the batch moves on.
type Batch struct {
	Uploader Uploader
	OnError  func(item *Item, err error)
	OnStatus func(item *Item)
}

// Queue gives every file a local id and pending status.
func Queue(files []File) []*Item {
	items := make([]*Item, len(files))
	for i, f := range files {
		items[i] = &Item{LocalID: uuid.NewString(), File: f, Status: model.UploadPending}
	}
	return items
}

// Run processes items sequentially.  It never fails as a whole; check each
// item's Status.
func (b *Batch) Run(ctx context.Context, parent model.Parent, opts Options, items []*Item) {
	for _, it := range items {
		if it.Status != model.UploadPending {
			continue
		}
		b.set(it, model.UploadUploading)

		if err := ctx.Err(); err != nil {
			b.fail(it, err)
			continue
		}
		rec, err := b.Uploader.Upload(ctx, parent, opts, it.File)
		if err != nil {
			b.fail(it, err)
			continue
		}
		it.Upload = rec
		b.set(it, model.UploadCompleted)
	}
}

func (b *Batch) set(it *Item, s model.UploadStatus) {
	it.Status = s
	if b.OnStatus != nil {
		b.OnStatus(it)
	}
}

func (b *Batch) fail(it *Item, err error) {
	it.Err = err
	b.set(it, model.UploadError)
	if b.OnError != nil {
		b.OnError(it, err)
	}
}
