package models

import "encoding/json"

// AnalysisModel persists a case-analysis result so users can revisit
// saved analyses. The scored tesis list is stored as JSON; scores are
// per-request annotations, never written back to the corpus.
type AnalysisModel struct {
	Base
	Descripcion      string          `json:"descripcion"       gorm:"type:text"`
	RolProcesal      string          `json:"rol_procesal"      gorm:"type:varchar(32)"`
	ProblemaJuridico string          `json:"problema_juridico" gorm:"type:text"`
	InsightJuridico  string          `json:"insight_juridico"  gorm:"type:text"`
	TesisRelevantes  json.RawMessage `json:"tesis_relevantes"  gorm:"type:longtext"`
}

func (AnalysisModel) TableName() string { return "analyses" }
