package models

import (
	"time"
)

// Document is a file attached to a plan item. NombreArchivo is the display
// name; RutaArchivo is the unique name inside the file store.
type Document struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	PlanMaestroID uint      `gorm:"not null;index" json:"plan_maestro_id"`
	NombreArchivo string    `gorm:"size:255;not null" json:"nombre_archivo"`
	RutaArchivo   string    `gorm:"size:500;not null;uniqueIndex" json:"ruta_archivo"`
	UploadedBy    *uint     `json:"uploaded_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName maps the model to its table.
func (Document) TableName() string {
	return "documentos"
}

// DocumentRow is a document with its uploader and plan labels.
type DocumentRow struct {
	Document
	ActivityCode *string `json:"activity_code,omitempty"`
	TaskName     *string `json:"task_name,omitempty"`
	Uploader     *string `json:"uploader"`
}
