package metadata

/** @brief A constant for invalid identifiers. */
const InvalidID uint32 = 0xFFFFFFFF

/** @brief A constant for invalid generations. */
const InvalidIDUint16 uint16 = 0xFFFF

/**
 * @brief A structure which is generated by the application and sent to
 * the renderer once per frame.
 */
type RenderPacket struct {
	DeltaTime float64
	/** @brief The geometries to be drawn this frame. */
	Geometries []*Geometry
}
