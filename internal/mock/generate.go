// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mock

//go:generate go run go.uber.org/mock/mockgen -source=../../visit.go -destination=visitor.go -package=mock
