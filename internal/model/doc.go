// Package model defines the contract between the binding engine and a
// computation model.
//
// A model declares its bindable attributes explicitly, in order, instead of
// having them discovered through reflection:
//
//	func (m *Revenue) Attributes() []model.Attribute {
//		return []model.Attribute{
//			model.Count(&m.LL),
//			model.Array("revenue", &m.Revenue),
//			model.Array("margin", &m.Margin),
//		}
//	}
//
// Everything else on the model is invisible to the engine.
package model
