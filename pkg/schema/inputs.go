package schema

// FileType 表格文件类型
type FileType string

const (
	FileTypeCSV     FileType = "csv"
	FileTypeJSON    FileType = "json"
	FileTypeParquet FileType = "parquet"
	FileTypeExcel   FileType = "excel"
)

// BaseInput 输入数据的公共字段
type BaseInput struct {
	ID        string  `json:"id" validate:"required"`
	Type      string  `json:"type" validate:"required"`
	CreatedAt int64   `json:"created_at" validate:"gte=0"`
	Version   *string `json:"version,omitempty"`
}

func (b BaseInput) Validate() error { return validate(b) }

// TabularFile 表格类文件描述
type TabularFile struct {
	ID        string   `json:"id" validate:"required"`
	Type      FileType `json:"type" validate:"oneof=csv json parquet excel"`
	CreatedAt int64    `json:"created_at" validate:"gte=0"`
	Source    string   `json:"source" validate:"required"`
	Filename  string   `json:"filename" validate:"required"`
	Size      int64    `json:"size" validate:"gte=0"`
	SavePath  *string  `json:"save_path,omitempty" validate:"omitempty,savepath"`
	Version   *string  `json:"version,omitempty"`
	Checksum  *string  `json:"checksum,omitempty"`
}

func (f TabularFile) Validate() error { return validate(f) }

// NewTabularFile 创建表格文件描述，CreatedAt 取当前时间
func NewTabularFile(id string, typ FileType, source, filename string, size int64) (TabularFile, error) {
	f := TabularFile{
		ID:        id,
		Type:      typ,
		CreatedAt: now(),
		Source:    source,
		Filename:  filename,
		Size:      size,
	}
	if err := f.Validate(); err != nil {
		return TabularFile{}, err
	}
	return f, nil
}

// MediaFile 媒体文件描述
type MediaFile struct {
	BaseInput
	Source   string  `json:"source" validate:"required"`
	Filename string  `json:"filename" validate:"required"`
	Size     int64   `json:"size" validate:"gte=0"`
	SavePath *string `json:"save_path,omitempty" validate:"omitempty,savepath"`
	Checksum *string `json:"checksum,omitempty"`
}

func (f MediaFile) Validate() error { return validate(f) }

// Image 图片文件
type Image struct {
	MediaFile
	Width  int    `json:"width" validate:"gte=0"`
	Height int    `json:"height" validate:"gte=0"`
	Format string `json:"format" validate:"required"`
}

func (i Image) Validate() error { return validate(i) }
