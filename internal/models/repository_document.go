package models

import (
	"time"
)

// RepositoryDocument is a knowledge-base entry of the strategic repository.
// It is not linked to any plan item.
type RepositoryDocument struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	Titulo              string    `gorm:"size:255;not null" json:"titulo"`
	TipoDocumento       *string   `gorm:"size:100" json:"tipo_documento"`
	Descripcion         *string   `gorm:"type:text" json:"descripcion"`
	PuntosClave         *string   `gorm:"type:text" json:"puntos_clave"`
	RutaArchivo         *string   `gorm:"size:500" json:"ruta_archivo"`
	FechaPublicacion    Date      `json:"fecha_publicacion"`
	FuenteOrigen        *string   `gorm:"size:100" json:"fuente_origen"`
	TipoFuente          *string   `gorm:"size:50" json:"tipo_fuente"`
	EnlaceExterno       *string   `gorm:"size:500" json:"enlace_externo"`
	EstadoProcesamiento string    `gorm:"size:50;not null;default:'Pendiente'" json:"estado_procesamiento"`
	Etiquetas           *string   `gorm:"size:255" json:"etiquetas"`
	UploadedBy          *uint     `json:"uploaded_by"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// TableName maps the model to its table.
func (RepositoryDocument) TableName() string {
	return "repositorio_documentos"
}

// RepositoryDocumentRow adds the uploader's display name.
type RepositoryDocumentRow struct {
	RepositoryDocument
	UploaderName *string `json:"uploader_name"`
}
